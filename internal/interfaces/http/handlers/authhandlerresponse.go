package handlers

import (
	"time"

	"github.com/frigoservis/servis/internal/application/user/dto"
	"github.com/frigoservis/servis/internal/application/user/usecases"
)

// LoginResponse represents the response for user login.
type LoginResponse struct {
	User        *dto.UserDTO `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	ExpiresIn   int64        `json:"expires_in"`
}

func toLoginResponse(r *usecases.LoginResult, now time.Time) *LoginResponse {
	expiresIn := int64(r.ExpiresAt.Sub(now).Seconds())
	if expiresIn < 0 {
		expiresIn = 0
	}
	return &LoginResponse{
		User:        r.User,
		AccessToken: r.AccessToken,
		TokenType:   r.TokenType,
		ExpiresAt:   r.ExpiresAt,
		ExpiresIn:   expiresIn,
	}
}
