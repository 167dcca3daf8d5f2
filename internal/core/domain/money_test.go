package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgca/treasury_backend/internal/apperrors"
	"github.com/sgca/treasury_backend/internal/core/domain"
)

func TestMoneyFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer amount", input: "100", want: "100.00"},
		{name: "one decimal place", input: "100.5", want: "100.50"},
		{name: "two decimal places", input: "100.55", want: "100.55"},
		{name: "negative amount parses", input: "-42.10", want: "-42.10"},
		{name: "zero", input: "0", want: "0.00"},
		{name: "trailing zeros beyond scale are fine", input: "12.3400", want: "12.34"},
		{name: "three decimal places rejected", input: "100.555", wantErr: true},
		{name: "sub-cent precision rejected", input: "0.001", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.MoneyFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestNewMoney_PrecisionValidation(t *testing.T) {
	_, err := domain.NewMoney(decimal.RequireFromString("19.999"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	m, err := domain.NewMoney(decimal.RequireFromString("19.99"))
	require.NoError(t, err)
	assert.Equal(t, "19.99", m.String())
}

func TestMoney_Arithmetic(t *testing.T) {
	a := domain.MustMoney("150.00")
	b := domain.MustMoney("20.00")

	assert.Equal(t, "170.00", a.Add(b).String())
	assert.Equal(t, "130.00", a.Sub(b).String())
	assert.Equal(t, "-20.00", b.Neg().String())
	assert.Equal(t, "20.00", b.Neg().Abs().String())
	assert.True(t, domain.ZeroMoney().IsZero())
	assert.True(t, a.IsPositive())
	assert.False(t, b.Neg().IsPositive())

	// 0.1 + 0.2 style sums stay exact in decimal arithmetic
	sum := domain.MustMoney("0.10").Add(domain.MustMoney("0.20"))
	assert.True(t, sum.Equal(domain.MustMoney("0.30")))
}

func TestMoney_Equal_IgnoresRepresentation(t *testing.T) {
	assert.True(t, domain.MustMoney("100.0").Equal(domain.MustMoney("100.00")))
	assert.True(t, domain.MustMoney("100").Equal(domain.MustMoney("100.00")))
	assert.False(t, domain.MustMoney("100.01").Equal(domain.MustMoney("100.00")))
}

func TestMoney_Signed(t *testing.T) {
	m := domain.MustMoney("50.00")
	assert.Equal(t, "50.00", m.Signed(domain.Credit).String())
	assert.Equal(t, "-50.00", m.Signed(domain.Debit).String())
}

func TestMoney_WithinEpsilon(t *testing.T) {
	base := domain.MustMoney("150.00")

	assert.True(t, base.WithinEpsilon(domain.MustMoney("150.00")))
	assert.True(t, base.WithinEpsilon(domain.MustMoney("150.01")))
	assert.True(t, base.WithinEpsilon(domain.MustMoney("149.99")))
	assert.False(t, base.WithinEpsilon(domain.MustMoney("150.02")))
	assert.False(t, base.WithinEpsilon(domain.MustMoney("149.98")))
}

func TestMoney_JSON(t *testing.T) {
	out, err := json.Marshal(domain.MustMoney("150.5"))
	require.NoError(t, err)
	assert.Equal(t, `"150.50"`, string(out))

	var m domain.Money
	require.NoError(t, json.Unmarshal([]byte(`"42.10"`), &m))
	assert.Equal(t, "42.10", m.String())

	// Bare numbers are accepted too
	require.NoError(t, json.Unmarshal([]byte(`7`), &m))
	assert.Equal(t, "7.00", m.String())

	err = json.Unmarshal([]byte(`"1.001"`), &m)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestEntry_Delta(t *testing.T) {
	credit := domain.Entry{Kind: domain.Credit, Amount: domain.MustMoney("50.00")}
	debit := domain.Entry{Kind: domain.Debit, Amount: domain.MustMoney("20.00")}

	assert.Equal(t, "50.00", credit.Delta().String())
	assert.Equal(t, "-20.00", debit.Delta().String())
}
