package model

// Role is the marketplace role a user signs in as.
type Role string

const (
	RoleFreelancer Role = "Freelancer"
	RoleEmployer   Role = "Employer"
	RoleAdmin      Role = "Admin"
)

// Roles lists the selectable roles in display order.
func Roles() []Role {
	return []Role{RoleFreelancer, RoleEmployer, RoleAdmin}
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFreelancer, RoleEmployer, RoleAdmin:
		return true
	default:
		return false
	}
}

// SelfService reports whether users may register themselves with r.
// Admin accounts are provisioned by operators only.
func (r Role) SelfService() bool {
	return r == RoleFreelancer || r == RoleEmployer
}
