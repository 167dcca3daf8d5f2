package domain

import "time"

// EntryKind indicates whether a ledger entry increases (credit) or decreases
// (debit) the account balance.
type EntryKind string

const (
	Credit EntryKind = "CREDIT"
	Debit  EntryKind = "DEBIT"
)

// Valid reports whether the kind is one of the two known values.
func (k EntryKind) Valid() bool {
	return k == Credit || k == Debit
}

// Entry is a single ledger line: one signed monetary movement against an
// account. Amount is always strictly positive; the sign comes from Kind.
type Entry struct {
	EntryID     string    `json:"entryID"`
	AccountID   string    `json:"accountID"`
	Kind        EntryKind `json:"kind"`
	Amount      Money     `json:"amount"`
	OccurredAt  time.Time `json:"occurredAt"`
	Description string    `json:"description"`
	CategoryID  *string   `json:"categoryID"` // Nullable
	RecordedBy  string    `json:"recordedBy"` // Actor identifier, opaque to the engine
	AuditFields
}

// Delta returns the entry's effect on the account balance.
func (e Entry) Delta() Money {
	return e.Amount.Signed(e.Kind)
}
