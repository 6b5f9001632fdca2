package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session represents one operator's cash-handling work period, from opening
// the drawer with a counted amount to closing it against an expected balance.
type Session struct {
	SessionID     int64            `json:"sessionID"`     // Primary Key (monotonic)
	OperatorName  string           `json:"operatorName"`  // Not Null, immutable after creation
	OpeningAmount decimal.Decimal  `json:"openingAmount"` // >= 0, two-decimal currency value
	ClosingAmount *decimal.Decimal `json:"closingAmount"` // Null until the session is closed
	OpenedAt      time.Time        `json:"openedAt"`
	ClosedAt      *time.Time       `json:"closedAt"` // Null until the session is closed
	IsActive      bool             `json:"isActive"` // At most one active session system-wide
}
