package usecases

import (
	"context"

	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type GetServiceUseCase struct {
	serviceRepo   service.ServiceRepository
	clientRepo    client.ClientRepository
	applianceRepo client.ApplianceRepository
	logger        logger.Interface
}

func NewGetServiceUseCase(
	serviceRepo service.ServiceRepository,
	clientRepo client.ClientRepository,
	applianceRepo client.ApplianceRepository,
	logger logger.Interface,
) *GetServiceUseCase {
	return &GetServiceUseCase{
		serviceRepo:   serviceRepo,
		clientRepo:    clientRepo,
		applianceRepo: applianceRepo,
		logger:        logger,
	}
}

func (uc *GetServiceUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint) (*dto.ServiceDTO, error) {
	svc, err := loadVisible(ctx, uc.serviceRepo, p, serviceID)
	if err != nil {
		return nil, err
	}

	out := dto.ToServiceDTO(svc)
	c, err := uc.clientRepo.GetByID(ctx, svc.ClientID())
	if err != nil {
		uc.logger.Errorw("failed to load client", "client_id", svc.ClientID(), "error", err)
		return nil, errors.NewInternalError("failed to load client")
	}
	if c != nil {
		out.ClientName = c.FullName()
	}
	a, err := uc.applianceRepo.GetByID(ctx, svc.ApplianceID())
	if err != nil {
		uc.logger.Errorw("failed to load appliance", "appliance_id", svc.ApplianceID(), "error", err)
		return nil, errors.NewInternalError("failed to load appliance")
	}
	if a != nil {
		out.ApplianceLabel = a.Label()
	}
	return out, nil
}

type GetServiceHistoryUseCase struct {
	serviceRepo service.ServiceRepository
	historyRepo service.StatusHistoryRepository
	logger      logger.Interface
}

func NewGetServiceHistoryUseCase(
	serviceRepo service.ServiceRepository,
	historyRepo service.StatusHistoryRepository,
	logger logger.Interface,
) *GetServiceHistoryUseCase {
	return &GetServiceHistoryUseCase{serviceRepo: serviceRepo, historyRepo: historyRepo, logger: logger}
}

// Execute returns the audit trail of a service, oldest first.
func (uc *GetServiceHistoryUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.StatusHistoryDTO, error) {
	if _, err := loadVisible(ctx, uc.serviceRepo, p, serviceID); err != nil {
		return nil, err
	}
	entries, err := uc.historyRepo.ListByServiceID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to list status history", "service_id", serviceID, "error", err)
		return nil, errors.NewInternalError("failed to load status history")
	}
	out := make([]*dto.StatusHistoryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToStatusHistoryDTO(e))
	}
	return out, nil
}
