package domain

// Role is the capability tag carried by a role assignment.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// RoleAssignment grants a user one role. A franchisee grant is scoped to a
// single franchise; every other kind is global. Build franchise-scoped grants
// through FranchiseeRole so callers never have to interpret a zero ObjectID.
type RoleAssignment struct {
	Role     Role  `json:"role"`
	ObjectID int64 `json:"objectId,omitempty"`
	// Object carries the franchise name on inbound payloads when the caller
	// does not know the franchise id yet (registration).
	Object string `json:"object,omitempty"`
}

// DinerRole returns an unscoped diner grant.
func DinerRole() RoleAssignment { return RoleAssignment{Role: RoleDiner} }

// AdminRole returns an unscoped admin grant.
func AdminRole() RoleAssignment { return RoleAssignment{Role: RoleAdmin} }

// FranchiseeRole returns a grant scoped to the given franchise.
func FranchiseeRole(franchiseID int64) RoleAssignment {
	return RoleAssignment{Role: RoleFranchisee, ObjectID: franchiseID}
}

// ForFranchise reports the franchise a grant is scoped to. ok is false for
// non-franchisee grants.
func (ra RoleAssignment) ForFranchise() (int64, bool) {
	if ra.Role != RoleFranchisee {
		return 0, false
	}
	return ra.ObjectID, true
}

// User models an account together with its role assignments. PasswordHash is
// only populated on the path between the repository and the credential check
// and is never serialised.
type User struct {
	ID           int64            `json:"id,omitempty"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	PasswordHash string           `json:"-"`
	Roles        []RoleAssignment `json:"roles"`
}

// IsRole reports whether the user holds the given role under any scope.
func (u *User) IsRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, ra := range u.Roles {
		if ra.Role == role {
			return true
		}
	}
	return false
}

// IsFranchiseAdmin reports whether the user holds a franchisee grant for the
// given franchise.
func (u *User) IsFranchiseAdmin(franchiseID int64) bool {
	if u == nil {
		return false
	}
	for _, ra := range u.Roles {
		if id, ok := ra.ForFranchise(); ok && id == franchiseID {
			return true
		}
	}
	return false
}
