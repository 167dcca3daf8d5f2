package domain

import "time"

// ReportResult is a point-in-time aggregation over a date range. Totals are
// computed fresh from the entry log, never from the cached balance.
type ReportResult struct {
	AccountID    string          `json:"accountID"`
	Start        time.Time       `json:"start"`
	End          time.Time       `json:"end"`
	Entries      []Entry         `json:"entries"`
	TotalCredits Money           `json:"totalCredits"`
	TotalDebits  Money           `json:"totalDebits"`
	Net          Money           `json:"net"` // credits minus debits; may be negative
	Breakdown    []CategoryTotal `json:"breakdown"`
}

// CategoryTotal aggregates the entries of one category within a report range.
// Entries without a category are grouped under an empty CategoryID.
type CategoryTotal struct {
	CategoryID   string    `json:"categoryID,omitempty"`
	CategoryName string    `json:"categoryName"`
	Kind         EntryKind `json:"kind"`
	Total        Money     `json:"total"`
	EntryCount   int       `json:"entryCount"`
}

// ReconciliationResult compares the cached balance against the sum recomputed
// from the entry log. Drift is diagnostic only: the cached value stays
// authoritative for balance reads and is never auto-corrected.
type ReconciliationResult struct {
	AccountID     string    `json:"accountID"`
	Cached        Money     `json:"cached"`
	Computed      Money     `json:"computed"`
	Drift         Money     `json:"drift"` // cached minus computed
	DriftDetected bool      `json:"driftDetected"`
	CheckedAt     time.Time `json:"checkedAt"`
}
