package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is an income or an expense.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Transaction is the persistence model for the transactions table.
// CategoryName is populated by a LEFT JOIN on categories, not stored.
type Transaction struct {
	TransactionID     int64           `json:"transactionID"`
	SessionID         int64           `json:"sessionID"`
	TransactionNumber string          `json:"transactionNumber"`
	TransactionType   TransactionType `json:"transactionType"`
	Amount            decimal.Decimal `json:"amount"`
	Concept           string          `json:"concept"`
	CategoryID        *int64          `json:"categoryID"`
	CategoryName      *string         `json:"categoryName"`
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"`
}
