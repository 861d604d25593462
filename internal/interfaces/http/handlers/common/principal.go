// Package common holds helpers shared by HTTP handlers.
package common

import (
	"github.com/gin-gonic/gin"

	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/constants"
	"github.com/frigoservis/servis/internal/shared/errors"
)

// Principal rebuilds the caller identity stored by the auth middleware.
func Principal(c *gin.Context) (shared.Principal, error) {
	userID, ok := c.Get(constants.ContextKeyUserID)
	if !ok {
		return shared.Principal{}, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}
	id, ok := userID.(uint)
	if !ok || id == 0 {
		return shared.Principal{}, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
	if !role.IsValid() {
		return shared.Principal{}, errors.NewUnauthorizedError(constants.ErrMsgUnauthorized)
	}

	var clientID *uint
	if v, ok := c.Get(constants.ContextKeyClientID); ok {
		if cid, ok := v.(uint); ok {
			clientID = &cid
		}
	}
	return shared.NewPrincipal(id, role, clientID), nil
}

// Warnings never serializes as null.
func Warnings(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}
