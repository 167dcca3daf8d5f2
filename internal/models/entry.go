package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind mirrors domain.EntryKind for DB storage.
type EntryKind string

const (
	Credit EntryKind = "CREDIT"
	Debit  EntryKind = "DEBIT"
)

// Entry represents one row of the entries table.
type Entry struct {
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	Kind        EntryKind       `db:"kind"`
	Amount      decimal.Decimal `db:"amount"` // Positive value; sign derived from kind
	OccurredAt  time.Time       `db:"occurred_at"`
	Description string          `db:"description"`
	CategoryID  *string         `db:"category_id"` // Nullable FK -> categories.category_id
	RecordedBy  string          `db:"recorded_by"` // FK -> users.user_id
	AuditFields
}
