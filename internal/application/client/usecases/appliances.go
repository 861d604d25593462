package usecases

import (
	"context"

	"github.com/frigoservis/servis/internal/application/client/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type AddApplianceCommand struct {
	ClientID     uint
	DeviceType   string
	Manufacturer string
	Model        string
	SerialNumber string
}

type AddApplianceUseCase struct {
	clientRepo    client.ClientRepository
	applianceRepo client.ApplianceRepository
	logger        logger.Interface
}

func NewAddApplianceUseCase(clientRepo client.ClientRepository, applianceRepo client.ApplianceRepository, logger logger.Interface) *AddApplianceUseCase {
	return &AddApplianceUseCase{clientRepo: clientRepo, applianceRepo: applianceRepo, logger: logger}
}

func (uc *AddApplianceUseCase) Execute(ctx context.Context, p shared.Principal, cmd AddApplianceCommand) (*dto.ApplianceDTO, error) {
	uc.logger.Infow("executing add appliance use case", "client_id", cmd.ClientID, "device_type", cmd.DeviceType)

	if err := requireRegistryAccess(p); err != nil {
		return nil, err
	}
	if _, err := loadClient(ctx, uc.clientRepo, uc.logger, cmd.ClientID); err != nil {
		return nil, err
	}

	a, err := client.NewAppliance(cmd.ClientID, cmd.DeviceType, cmd.Manufacturer, cmd.Model, cmd.SerialNumber)
	if err != nil {
		return nil, errors.FromDomainValidation(err)
	}
	if err := uc.applianceRepo.Create(ctx, a); err != nil {
		uc.logger.Errorw("failed to persist appliance", "client_id", cmd.ClientID, "error", err)
		return nil, errors.NewInternalError("failed to add appliance")
	}

	uc.logger.Infow("appliance added successfully", "appliance_id", a.ID(), "client_id", cmd.ClientID)
	return dto.ToApplianceDTO(a), nil
}

type ListAppliancesUseCase struct {
	clientRepo    client.ClientRepository
	applianceRepo client.ApplianceRepository
	logger        logger.Interface
}

func NewListAppliancesUseCase(clientRepo client.ClientRepository, applianceRepo client.ApplianceRepository, logger logger.Interface) *ListAppliancesUseCase {
	return &ListAppliancesUseCase{clientRepo: clientRepo, applianceRepo: applianceRepo, logger: logger}
}

func (uc *ListAppliancesUseCase) Execute(ctx context.Context, p shared.Principal, clientID uint) ([]*dto.ApplianceDTO, error) {
	if err := requireRegistryAccess(p); err != nil {
		return nil, err
	}
	if _, err := loadClient(ctx, uc.clientRepo, uc.logger, clientID); err != nil {
		return nil, err
	}

	appliances, err := uc.applianceRepo.ListByClientID(ctx, clientID)
	if err != nil {
		uc.logger.Errorw("failed to list appliances", "client_id", clientID, "error", err)
		return nil, errors.NewInternalError("failed to list appliances")
	}
	return dto.ToApplianceDTOs(appliances), nil
}
