package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cajachoca/cajachoca_backend/internal/apperrors"
	"github.com/cajachoca/cajachoca_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// errorStatus maps the service error taxonomy onto HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage picks the client-facing message. Storage faults keep their
// short description but never leak the underlying driver error.
func errorMessage(err error, status int) string {
	if status != http.StatusInternalServerError {
		return err.Error()
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

// respondError writes a failed envelope with the mapped status code.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	c.JSON(status, dto.Fail(errorMessage(err, status)))
}

// respondListError is respondError for list endpoints, which carry the
// totalCount field even on failure.
func respondListError(c *gin.Context, err error) {
	status := errorStatus(err)
	c.JSON(status, dto.ListFail(errorMessage(err, status)))
}

// pathID parses a positive int64 path parameter, answering 400 itself when
// the value is not a number.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.Fail("invalid "+name+" parameter"))
		return 0, false
	}
	return id, true
}
