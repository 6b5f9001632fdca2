package dto

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest registers a movement against the active session.
type CreateTransactionRequest struct {
	SessionID       int64                  `json:"sessionID" binding:"required"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Concept         string                 `json:"concept" binding:"required"`
	CategoryID      *int64                 `json:"categoryID" binding:"required"`
}

// UpdateTransactionRequest corrects a historical movement. The transaction
// number, creation time and creator are never touched.
type UpdateTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Concept    string          `json:"concept" binding:"required"`
	CategoryID *int64          `json:"categoryID"`
}

// ListTransactionsParams filters and paginates the journal listing.
// Dates are calendar dates in YYYY-MM-DD form, inclusive on both ends.
type ListTransactionsParams struct {
	SessionID       *int64                  `form:"sessionID"`
	TransactionType *domain.TransactionType `form:"transactionType"`
	StartDate       *string                 `form:"startDate"`
	EndDate         *string                 `form:"endDate"`
	Limit           int                     `form:"limit"`
	Offset          int                     `form:"offset"`
}

// SearchTransactionsParams matches concept or transaction number by
// case-insensitive substring.
type SearchTransactionsParams struct {
	Query  string `form:"query" binding:"required"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}
