package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/biztime"
	sharedConfig "github.com/frigoservis/servis/internal/shared/config"
)

type Claims struct {
	UserID   uint                   `json:"user_id"`
	Role     authorization.UserRole `json:"role"`
	ClientID *uint                  `json:"client_id,omitempty"`
	jwt.RegisteredClaims
}

// Principal converts verified claims into the caller identity used by use cases.
func (c *Claims) Principal() shared.Principal {
	return shared.NewPrincipal(c.UserID, c.Role, c.ClientID)
}

type JWTService struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
}

func NewJWTService(cfg sharedConfig.JWTConfig) *JWTService {
	ttl := cfg.AccessTTL()
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &JWTService{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		accessTTL: ttl,
		now:       biztime.NowUTC,
	}
}

// Issue signs an access token for p. There are no refresh tokens; clients log in again after expiry.
func (s *JWTService) Issue(p shared.Principal) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.accessTTL)

	claims := &Claims{
		UserID:   p.UserID,
		Role:     p.Role,
		ClientID: p.ClientID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(p.UserID), 10),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("invalid role in token: %s", claims.Role)
	}
	return claims, nil
}
