package dto

import "github.com/cajachoca/cajachoca_backend/internal/core/domain"

// LoginRequest authenticates an operator by username and password.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed token and the authenticated operator.
type LoginResponse struct {
	Token    string          `json:"token"`
	Operator domain.Operator `json:"operator"`
}

// CreateOperatorRequest registers a new operator account.
type CreateOperatorRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}
