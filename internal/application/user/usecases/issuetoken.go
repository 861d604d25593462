package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// IssueTokenUseCase mints an access token for an existing account without a
// password. It backs the operator CLI and is never exposed over HTTP.
type IssueTokenUseCase struct {
	userRepo user.UserRepository
	tokens   TokenIssuer
	logger   logger.Interface
}

func NewIssueTokenUseCase(userRepo user.UserRepository, tokens TokenIssuer, logger logger.Interface) *IssueTokenUseCase {
	return &IssueTokenUseCase{userRepo: userRepo, tokens: tokens, logger: logger}
}

func (uc *IssueTokenUseCase) Execute(ctx context.Context, username string) (*TokenResult, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	uc.logger.Infow("executing issue token use case", "username", username)

	u, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		uc.logger.Errorw("failed to get user by username", "error", err)
		return nil, errors.NewInternalError("failed to load user")
	}
	if u == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user %q not found", username))
	}
	if !u.IsActive() {
		return nil, errors.NewForbiddenError("account is deactivated")
	}

	token, expiresAt, err := uc.tokens.Issue(shared.NewPrincipal(u.ID(), u.Role(), u.ClientID()))
	if err != nil {
		uc.logger.Errorw("failed to issue access token", "user_id", u.ID(), "error", err)
		return nil, errors.NewInternalError("failed to issue access token")
	}
	return newTokenResult(token, expiresAt), nil
}
