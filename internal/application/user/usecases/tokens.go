package usecases

import (
	"time"

	"github.com/frigoservis/servis/internal/domain/shared"
)

// TokenIssuer signs access tokens for an authenticated principal.
type TokenIssuer interface {
	Issue(p shared.Principal) (token string, expiresAt time.Time, err error)
}

type TokenResult struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

func newTokenResult(token string, expiresAt time.Time) *TokenResult {
	return &TokenResult{AccessToken: token, TokenType: "Bearer", ExpiresAt: expiresAt}
}
