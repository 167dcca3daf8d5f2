package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sgca/treasury_backend/internal/apperrors"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation error", err: apperrors.ErrValidation, want: http.StatusBadRequest},
		{name: "wrapped validation error", err: fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation), want: http.StatusBadRequest},
		{name: "invalid amount", err: apperrors.ErrInvalidAmount, want: http.StatusBadRequest},
		{name: "invalid range", err: apperrors.ErrInvalidRange, want: http.StatusBadRequest},
		{name: "not found", err: apperrors.ErrNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("failed to find transaction: %w", apperrors.ErrNotFound), want: http.StatusNotFound},
		{name: "forbidden", err: apperrors.ErrForbidden, want: http.StatusForbidden},
		{name: "duplicate", err: apperrors.ErrDuplicate, want: http.StatusConflict},
		{name: "conflict", err: apperrors.ErrConflict, want: http.StatusConflict},
		{name: "storage failure", err: apperrors.ErrStorage, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "app error carries its own code", err: apperrors.NewAppError(400, "invalid nextToken", errors.New("base64 decode")), want: http.StatusBadRequest},
		{name: "not found app error", err: apperrors.NewNotFoundError("entry missing"), want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
