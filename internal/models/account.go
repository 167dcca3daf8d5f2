package models

import (
	"github.com/shopspring/decimal"
)

// Account represents one row of the accounts table. Balance is the cached
// aggregate maintained by the ledger repository; version is bumped on every
// committed balance mutation.
type Account struct {
	AccountID   string          `db:"account_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	Balance     decimal.Decimal `db:"balance"`
	Version     int64           `db:"version"`
	AuditFields
}
