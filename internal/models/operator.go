package models

import "time"

// Operator is the persistence model for the operators table.
type Operator struct {
	OperatorID   string    `json:"operatorID"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
