package dto

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/user"
)

type UserDTO struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	ClientID  *uint     `json:"client_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID(),
		Username:  u.Username(),
		FullName:  u.FullName(),
		Role:      u.Role().String(),
		Phone:     u.Phone(),
		Email:     u.Email(),
		ClientID:  u.ClientID(),
		Active:    u.IsActive(),
		CreatedAt: u.CreatedAt(),
	}
}
