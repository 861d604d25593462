package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/client/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type GetClientUseCase struct {
	clientRepo client.ClientRepository
	logger     logger.Interface
}

func NewGetClientUseCase(clientRepo client.ClientRepository, logger logger.Interface) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, p shared.Principal, clientID uint) (*dto.ClientDTO, error) {
	if err := requireRegistryAccess(p); err != nil {
		return nil, err
	}
	c, err := loadClient(ctx, uc.clientRepo, uc.logger, clientID)
	if err != nil {
		return nil, err
	}
	return dto.ToClientDTO(c), nil
}

func loadClient(ctx context.Context, repo client.ClientRepository, log logger.Interface, clientID uint) (*client.Client, error) {
	c, err := repo.GetByID(ctx, clientID)
	if err != nil {
		log.Errorw("failed to load client", "client_id", clientID, "error", err)
		return nil, errors.NewInternalError("failed to load client")
	}
	if c == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("client %d not found", clientID))
	}
	return c, nil
}

type ListClientsQuery struct {
	// Search matches name or phone.
	Search   string
	Page     int
	PageSize int
}

type ListClientsResult struct {
	Clients  []*dto.ClientDTO
	Total    int64
	Page     int
	PageSize int
}

type ListClientsUseCase struct {
	clientRepo client.ClientRepository
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.ClientRepository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, p shared.Principal, query ListClientsQuery) (*ListClientsResult, error) {
	if err := requireRegistryAccess(p); err != nil {
		return nil, err
	}
	pg := utils.ValidatePagination(query.Page, query.PageSize)

	clients, total, err := uc.clientRepo.List(ctx, query.Search, pg.PageSize, (pg.Page-1)*pg.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list clients", "error", err)
		return nil, errors.NewInternalError("failed to list clients")
	}
	return &ListClientsResult{
		Clients:  dto.ToClientDTOs(clients),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}
