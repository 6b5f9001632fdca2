package domain

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

// Valid reports whether the type is one of the closed set of movement types.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single cash movement recorded against a session.
type Transaction struct {
	TransactionID     int64           `json:"transactionID"`     // Primary Key
	SessionID         int64           `json:"sessionID"`         // FK -> Session.sessionID (Not Null)
	TransactionNumber string          `json:"transactionNumber"` // Human readable, sequential, never reused (e.g. TR-1001)
	TransactionType   TransactionType `json:"transactionType"`   // income or expense (Not Null)
	Amount            decimal.Decimal `json:"amount"`            // Strictly positive; two-decimal currency value
	Concept           string          `json:"concept"`           // Not Null free text
	CategoryID        *int64          `json:"categoryID"`        // Optional FK -> Category.categoryID
	CategoryName      *string         `json:"categoryName"`      // Denormalized for listings; resolved on read
	CreatedAt         time.Time       `json:"createdAt"`
	CreatedBy         string          `json:"createdBy"` // Operator name, denormalized at creation time
}
