package models

// Category represents one row of the categories table.
type Category struct {
	CategoryID string    `db:"category_id"`
	AccountID  string    `db:"account_id"`
	Name       string    `db:"name"`
	Kind       EntryKind `db:"kind"`
	AuditFields
}
