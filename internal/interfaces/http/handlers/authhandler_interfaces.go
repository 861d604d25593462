package handlers

import (
	"context"

	"github.com/frigoservis/servis/internal/application/user/dto"
	"github.com/frigoservis/servis/internal/application/user/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
)

// Use case interfaces for AuthHandler and UserHandler - enables unit testing with mocks.

type loginUseCase interface {
	Execute(ctx context.Context, cmd usecases.LoginCommand) (*usecases.LoginResult, error)
}

type createUserUseCase interface {
	Execute(ctx context.Context, p shared.Principal, cmd usecases.CreateUserCommand) (*dto.UserDTO, error)
}
