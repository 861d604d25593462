package usecases

import (
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
)

// requireRegistryAccess admits administrators and business partners, the
// two roles that open services on behalf of clients.
func requireRegistryAccess(p shared.Principal) error {
	if p.IsAdmin() || p.IsBusinessPartner() {
		return nil
	}
	return errors.NewForbiddenError("client registry is restricted to administrators and partners")
}
