package shared

// Role identifies the caller's role for transition gating.
// Admin and super admin are equivalent everywhere a transition rule
// speaks of "admin".
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
	RoleSeller     Role = "seller"
	RoleBuyer      Role = "buyer"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSuperAdmin, RoleSeller, RoleBuyer:
		return true
	}
	return false
}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsAdmin returns true for admin and super_admin
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSeller returns true for the seller role
func (r Role) IsSeller() bool {
	return r == RoleSeller
}

// IsBuyer returns true for the buyer role
func (r Role) IsBuyer() bool {
	return r == RoleBuyer
}
