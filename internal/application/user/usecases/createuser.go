package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/frigoservis/servis/internal/application/user/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type CreateUserCommand struct {
	Username string
	Password string
	FullName string
	Role     string
	Phone    string
	Email    string
	ClientID *uint
}

type CreateUserUseCase struct {
	userRepo   user.UserRepository
	clientRepo client.ClientRepository
	hasher     user.PasswordHasher
	logger     logger.Interface
}

func NewCreateUserUseCase(
	userRepo user.UserRepository,
	clientRepo client.ClientRepository,
	hasher user.PasswordHasher,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:   userRepo,
		clientRepo: clientRepo,
		hasher:     hasher,
		logger:     logger,
	}
}

// Execute creates an account. Only administrators (or the CLI acting as the
// system principal) may create accounts.
func (uc *CreateUserUseCase) Execute(ctx context.Context, p shared.Principal, cmd CreateUserCommand) (*dto.UserDTO, error) {
	uc.logger.Infow("executing create user use case", "username", cmd.Username, "role", cmd.Role)

	if !p.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may create users")
	}

	role := authorization.UserRole(strings.TrimSpace(cmd.Role))
	if !role.IsValid() {
		return nil, errors.NewFieldValidationError("role", fmt.Sprintf("unknown role %q", cmd.Role))
	}
	if len(cmd.Password) < user.MinPasswordLength {
		return nil, errors.NewFieldValidationError("password", fmt.Sprintf("password must be at least %d characters", user.MinPasswordLength))
	}

	if cmd.ClientID != nil {
		c, err := uc.clientRepo.GetByID(ctx, *cmd.ClientID)
		if err != nil {
			uc.logger.Errorw("failed to load client", "client_id", *cmd.ClientID, "error", err)
			return nil, errors.NewInternalError("failed to load client")
		}
		if c == nil {
			return nil, errors.NewFieldValidationError("client_id", fmt.Sprintf("client %d does not exist", *cmd.ClientID))
		}
	}

	existing, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(cmd.Username)))
	if err != nil {
		uc.logger.Errorw("failed to check username", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}
	if existing != nil {
		return nil, errors.NewConflictError("username already taken")
	}

	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		uc.logger.Errorw("failed to hash password", "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	u, err := user.NewUser(cmd.Username, cmd.FullName, role, cmd.Phone, cmd.Email, hash, cmd.ClientID)
	if err != nil {
		return nil, errors.FromDomainValidation(err)
	}
	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to persist user", "username", u.Username(), "error", err)
		return nil, errors.NewInternalError("failed to create user")
	}

	uc.logger.Infow("user created successfully", "user_id", u.ID(), "role", u.Role())
	return dto.ToUserDTO(u), nil
}
