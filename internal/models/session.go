package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is the persistence model for the sessions table.
type Session struct {
	SessionID     int64            `json:"sessionID"`
	OperatorName  string           `json:"operatorName"`
	OpeningAmount decimal.Decimal  `json:"openingAmount"`
	ClosingAmount *decimal.Decimal `json:"closingAmount"`
	OpenedAt      time.Time        `json:"openedAt"`
	ClosedAt      *time.Time       `json:"closedAt"`
	IsActive      bool             `json:"isActive"`
}
