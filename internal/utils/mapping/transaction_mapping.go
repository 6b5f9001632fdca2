package mapping

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/models"
)

// ToDomainTransaction converts a persistence transaction into its domain counterpart.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		SessionID:         m.SessionID,
		TransactionNumber: m.TransactionNumber,
		TransactionType:   domain.TransactionType(m.TransactionType),
		Amount:            m.Amount,
		Concept:           m.Concept,
		CategoryID:        m.CategoryID,
		CategoryName:      m.CategoryName,
		CreatedAt:         m.CreatedAt,
		CreatedBy:         m.CreatedBy,
	}
}

// ToDomainTransactionSlice converts a slice of persistence transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainTransaction(m)
	}
	return out
}
