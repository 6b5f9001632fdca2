package mapping

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/cajachoca/cajachoca_backend/internal/models"
)

// ToDomainSession converts a persistence session into its domain counterpart.
func ToDomainSession(m models.Session) domain.Session {
	return domain.Session{
		SessionID:     m.SessionID,
		OperatorName:  m.OperatorName,
		OpeningAmount: m.OpeningAmount,
		ClosingAmount: m.ClosingAmount,
		OpenedAt:      m.OpenedAt,
		ClosedAt:      m.ClosedAt,
		IsActive:      m.IsActive,
	}
}
