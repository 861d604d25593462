package authorization

// UserRole is the closed set of principal roles.
type UserRole string

const (
	RoleAdmin           UserRole = "admin"
	RoleTechnician      UserRole = "technician"
	RoleBusinessPartner UserRole = "business_partner"
	RoleSupplier        UserRole = "supplier"
	RoleCustomer        UserRole = "customer"
)

var allRoles = []UserRole{RoleAdmin, RoleTechnician, RoleBusinessPartner, RoleSupplier, RoleCustomer}

// AllRoles lists every role in a stable order.
func AllRoles() []UserRole {
	out := make([]UserRole, len(allRoles))
	copy(out, allRoles)
	return out
}

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	for _, role := range allRoles {
		if r == role {
			return true
		}
	}
	return false
}
