package domain

// Category is an optional grouping for ledger entries. A category is bound to
// one account and one entry kind; an entry may only reference a category whose
// kind matches its own.
type Category struct {
	CategoryID string    `json:"categoryID"`
	AccountID  string    `json:"accountID"`
	Name       string    `json:"name"`
	Kind       EntryKind `json:"kind"`
	AuditFields
}
