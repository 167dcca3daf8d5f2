package domain

// UserRole classifies a member of the organization. Role checks happen at the
// HTTP gateway; the ledger engine itself treats actors as opaque identifiers.
type UserRole string

const (
	RolePresident   UserRole = "PRESIDENT"
	RoleTreasurer   UserRole = "TREASURER"
	RoleCoordinator UserRole = "COORDINATOR"
	RoleMember      UserRole = "MEMBER"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RolePresident, RoleTreasurer, RoleCoordinator, RoleMember:
		return true
	}
	return false
}

// User represents an authenticated member of the organization.
type User struct {
	UserID       string   `json:"userID"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
