package domain

import (
	"fmt"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed number of fractional digits carried by every
// monetary value in the ledger.
const MoneyScale = 2

// epsilon is the smallest representable unit at MoneyScale (0.01). It is used
// only for drift detection during reconciliation; all other comparisons are exact.
var epsilon = decimal.New(1, -MoneyScale)

// Money is a fixed-point monetary value with exactly MoneyScale fractional
// digits. Arithmetic is exact decimal arithmetic; no binary floating point is
// involved at any step. The zero value is 0.00.
type Money struct {
	value decimal.Decimal
}

// NewMoney validates a decimal value as a ledger amount. It fails with
// ErrInvalidAmount when the value carries precision finer than MoneyScale.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.Exponent() < -MoneyScale && !d.Equal(d.Truncate(MoneyScale)) {
		return Money{}, fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidAmount, d.String(), MoneyScale)
	}
	return Money{value: d}, nil
}

// MoneyFromString parses a decimal string into a Money value. It fails with
// ErrInvalidAmount when the input is not a finite decimal number or carries
// unsupported precision.
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a valid decimal", apperrors.ErrInvalidAmount, s)
	}
	return NewMoney(d)
}

// MustMoney parses a decimal string and panics on failure. Intended for
// constants and tests only.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromStorage wraps a decimal loaded from the backing store without
// re-validating precision; the schema constrains the column scale already.
func MoneyFromStorage(d decimal.Decimal) Money {
	return Money{value: d}
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{value: decimal.Zero}
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

func (m Money) Sub(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

func (m Money) Neg() Money {
	return Money{value: m.value.Neg()}
}

func (m Money) Abs() Money {
	return Money{value: m.value.Abs()}
}

// IsPositive reports whether the value is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.value.IsPositive()
}

func (m Money) IsZero() bool {
	return m.value.IsZero()
}

// Equal reports exact equality (100.0 equals 100.00).
func (m Money) Equal(other Money) bool {
	return m.value.Equal(other.value)
}

// WithinEpsilon reports whether the absolute difference to other is at most
// one smallest unit. Used exclusively by the reconciliation checker.
func (m Money) WithinEpsilon(other Money) bool {
	return m.value.Sub(other.value).Abs().LessThanOrEqual(epsilon)
}

// Signed returns the value's effect on an account balance: positive for a
// credit, negative for a debit.
func (m Money) Signed(kind EntryKind) Money {
	if kind == Debit {
		return m.Neg()
	}
	return m
}

// String renders the value at the fixed scale, e.g. "150.00".
func (m Money) String() string {
	return m.value.StringFixed(MoneyScale)
}

// MarshalJSON renders the value as a JSON string at the fixed scale.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number and applies the
// same validation as MoneyFromString.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := MoneyFromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
