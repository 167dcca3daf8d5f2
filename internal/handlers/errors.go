package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sgca/treasury_backend/internal/apperrors"
)

// ErrorResponse is a generic error response structure for handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusFromError maps service errors onto HTTP status codes. Unknown errors
// map to 500 so internals never leak as client faults.
func statusFromError(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidRange):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the mapped status for err. Client faults echo the
// error message; server faults get the generic fallback message instead.
func respondWithError(c *gin.Context, err error, fallback string) {
	status := statusFromError(err)
	msg := fallback
	if status != http.StatusInternalServerError {
		msg = err.Error()
	}
	c.JSON(status, ErrorResponse{Error: msg})
}
