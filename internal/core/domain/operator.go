package domain

import "time"

// Operator is a person allowed to open sessions and register movements.
type Operator struct {
	OperatorID   string    `json:"operatorID"` // Primary Key (UUID)
	Name         string    `json:"name"`       // Display name, stamped on sessions and transactions
	Username     string    `json:"username"`   // Unique login name
	PasswordHash string    `json:"-"`          // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"createdAt"`
}
