package user

import (
	"context"

	"github.com/frigoservis/servis/internal/shared/authorization"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	// GetByUsername returns nil, nil when no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListActiveByRole(ctx context.Context, role authorization.UserRole) ([]*User, error)
}
