package mapping

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/models"
)

// ToDomainOperator converts a persistence operator into its domain counterpart.
func ToDomainOperator(m models.Operator) domain.Operator {
	return domain.Operator{
		OperatorID:   m.OperatorID,
		Name:         m.Name,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}
