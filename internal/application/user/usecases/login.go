package usecases

import (
	"context"
	"strings"

	"github.com/frigoservis/servis/internal/application/user/dto"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type LoginCommand struct {
	Username string
	Password string
}

type LoginResult struct {
	User *dto.UserDTO
	*TokenResult
}

type LoginUseCase struct {
	userRepo user.UserRepository
	hasher   user.PasswordHasher
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewLoginUseCase(userRepo user.UserRepository, hasher user.PasswordHasher, tokens TokenIssuer, logger logger.Interface) *LoginUseCase {
	return &LoginUseCase{userRepo: userRepo, hasher: hasher, tokens: tokens, logger: logger}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	username := strings.ToLower(strings.TrimSpace(cmd.Username))
	uc.logger.Infow("executing login use case", "username", username)

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	// Same message for unknown users, disabled accounts and bad passwords.
	if u == nil || !u.IsActive() {
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}
	if err := uc.hasher.Verify(cmd.Password, u.PasswordHash()); err != nil {
		uc.logger.Warnw("failed login attempt", "user_id", u.ID())
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	token, expiresAt, err := uc.tokens.Issue(shared.NewPrincipal(u.ID(), u.Role(), u.ClientID()))
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}

	uc.logger.Infow("user logged in successfully", "user_id", u.ID(), "role", u.Role())
	return &LoginResult{User: dto.ToUserDTO(u), TokenResult: newTokenResult(token, expiresAt)}, nil
}
