package usecases

import (
	"context"

	"github.com/frigoservis/servis/internal/application/client/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type CreateClientCommand struct {
	FullName string
	Phone    string
	Email    string
	Address  string
	City     string
}

type CreateClientUseCase struct {
	clientRepo client.ClientRepository
	logger     logger.Interface
}

func NewCreateClientUseCase(clientRepo client.ClientRepository, logger logger.Interface) *CreateClientUseCase {
	return &CreateClientUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, p shared.Principal, cmd CreateClientCommand) (*dto.ClientDTO, error) {
	uc.logger.Infow("executing create client use case", "user_id", p.UserID)

	if err := requireRegistryAccess(p); err != nil {
		return nil, err
	}

	c, err := client.NewClient(cmd.FullName, cmd.Phone, cmd.Email, cmd.Address, cmd.City)
	if err != nil {
		return nil, errors.FromDomainValidation(err)
	}
	if err := uc.clientRepo.Create(ctx, c); err != nil {
		uc.logger.Errorw("failed to persist client", "error", err)
		return nil, errors.NewInternalError("failed to create client")
	}

	uc.logger.Infow("client created successfully", "client_id", c.ID())
	return dto.ToClientDTO(c), nil
}
