// Package shared holds types shared across domain aggregates.
package shared

import (
	"github.com/frigoservis/servis/internal/shared/authorization"
)

// Principal identifies the caller of a use case. It is built from the verified
// request credentials and passed explicitly; domain code never reads ambient session state.
type Principal struct {
	UserID uint
	Role   authorization.UserRole
	// ClientID links a customer account to its client registry entry.
	ClientID *uint
}

func NewPrincipal(userID uint, role authorization.UserRole, clientID *uint) Principal {
	return Principal{UserID: userID, Role: role, ClientID: clientID}
}

// SystemPrincipal is used by CLI jobs that act without a logged-in user.
func SystemPrincipal() Principal {
	return Principal{Role: authorization.RoleAdmin}
}

func (p Principal) IsAdmin() bool           { return p.Role == authorization.RoleAdmin }
func (p Principal) IsTechnician() bool      { return p.Role == authorization.RoleTechnician }
func (p Principal) IsBusinessPartner() bool { return p.Role == authorization.RoleBusinessPartner }
func (p Principal) IsSupplier() bool        { return p.Role == authorization.RoleSupplier }
func (p Principal) IsCustomer() bool        { return p.Role == authorization.RoleCustomer }

// OwnsClient reports whether a customer principal is linked to clientID.
func (p Principal) OwnsClient(clientID uint) bool {
	return p.ClientID != nil && *p.ClientID == clientID
}
