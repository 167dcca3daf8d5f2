package domain

// Account represents one organization's financial ledger and its cached
// balance. The balance is mutated exclusively through the ledger repository's
// atomic operations and must always equal the sum of the signed amounts of the
// entries currently stored for the account.
type Account struct {
	AccountID   string `json:"accountID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Balance     Money  `json:"balance"` // Cached aggregate; may go negative
	Version     int64  `json:"version"` // Incremented on every committed balance mutation
	AuditFields
}
