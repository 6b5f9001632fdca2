package dto

import (
	"github.com/cajachoca/cajachoca_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// OpenSessionRequest opens a new cash session.
// OpeningAmount may legitimately be zero, so it carries no required binding;
// negativity is rejected by the service.
type OpenSessionRequest struct {
	OperatorName  string          `json:"operatorName" binding:"required"`
	OpeningAmount decimal.Decimal `json:"openingAmount"`
}

// CloseSessionRequest closes an active session with the counted amount.
type CloseSessionRequest struct {
	SessionID     int64           `json:"sessionID" binding:"required"`
	ClosingAmount decimal.Decimal `json:"closingAmount"`
}

// ClosedSessionResponse returns the closed session together with the
// reconciliation variance computed at closing time.
type ClosedSessionResponse struct {
	Session    domain.Session  `json:"session"`
	Difference decimal.Decimal `json:"difference"`
}
