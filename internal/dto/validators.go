package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/sgca/treasury_backend/internal/core/domain"
)

// validMoneyAmount checks that a string field parses as a strictly positive
// monetary amount at the ledger scale. Richer diagnostics come from the
// service layer; this rejects malformed input at the binding boundary.
func validMoneyAmount(fl validator.FieldLevel) bool {
	amount, err := domain.MoneyFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// RegisterValidators attaches custom binding rules to gin's validator engine.
// Call once during startup before serving requests.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validMoneyAmount)
	}
}
