package user

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/frigoservis/servis/internal/shared/authorization"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,50}$`)

// User is an account of any portal role.
type User struct {
	id           uint
	username     string
	fullName     string
	role         authorization.UserRole
	phone        string
	email        string
	passwordHash string
	clientID     *uint
	active       bool
	createdAt    time.Time
}

func NewUser(username, fullName string, role authorization.UserRole, phone, email, passwordHash string, clientID *uint) (*User, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, fmt.Errorf("username: must be 3-50 letters, digits, dots, dashes or underscores")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("role: invalid role %q", role)
	}
	if role == authorization.RoleCustomer && clientID == nil {
		return nil, fmt.Errorf("client_id: customer accounts must be linked to a client")
	}
	if role != authorization.RoleCustomer && clientID != nil {
		return nil, fmt.Errorf("client_id: only customer accounts are linked to a client")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password: password hash is required")
	}
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		fullName = username
	}
	return &User{
		username:     strings.ToLower(username),
		fullName:     fullName,
		role:         role,
		phone:        strings.TrimSpace(phone),
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		clientID:     clientID,
		active:       true,
		createdAt:    time.Now().UTC(),
	}, nil
}

func ReconstructUser(
	id uint,
	username, fullName string,
	role authorization.UserRole,
	phone, email, passwordHash string,
	clientID *uint,
	active bool,
	createdAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	return &User{
		id:           id,
		username:     username,
		fullName:     fullName,
		role:         role,
		phone:        phone,
		email:        email,
		passwordHash: passwordHash,
		clientID:     clientID,
		active:       active,
		createdAt:    createdAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Username() string             { return u.username }
func (u *User) FullName() string             { return u.fullName }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) Phone() string                { return u.phone }
func (u *User) Email() string                { return u.email }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) ClientID() *uint              { return u.clientID }
func (u *User) IsActive() bool               { return u.active }
func (u *User) CreatedAt() time.Time         { return u.createdAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Deactivate() {
	u.active = false
}
