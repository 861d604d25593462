package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/domain/client"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type CreateServiceCommand struct {
	ClientID    uint
	ApplianceID uint
	Description string
}

type CreateServiceUseCase struct {
	serviceRepo   service.ServiceRepository
	clientRepo    client.ClientRepository
	applianceRepo client.ApplianceRepository
	logger        logger.Interface
}

func NewCreateServiceUseCase(
	serviceRepo service.ServiceRepository,
	clientRepo client.ClientRepository,
	applianceRepo client.ApplianceRepository,
	logger logger.Interface,
) *CreateServiceUseCase {
	return &CreateServiceUseCase{
		serviceRepo:   serviceRepo,
		clientRepo:    clientRepo,
		applianceRepo: applianceRepo,
		logger:        logger,
	}
}

// Execute opens a pending ticket. Partners own the tickets they open; customers
// may only open tickets for their own appliances.
func (uc *CreateServiceUseCase) Execute(ctx context.Context, p shared.Principal, cmd CreateServiceCommand) (*dto.ServiceDTO, error) {
	uc.logger.Infow("executing create service use case",
		"client_id", cmd.ClientID,
		"appliance_id", cmd.ApplianceID,
		"user_id", p.UserID,
		"role", p.Role)

	var partnerID *uint
	switch {
	case p.IsAdmin():
	case p.IsBusinessPartner():
		id := p.UserID
		partnerID = &id
	case p.IsCustomer():
		if !p.OwnsClient(cmd.ClientID) {
			return nil, errors.NewForbiddenError("customers may only open services for themselves")
		}
	default:
		return nil, errors.NewForbiddenError("role may not open services")
	}

	c, err := uc.clientRepo.GetByID(ctx, cmd.ClientID)
	if err != nil {
		uc.logger.Errorw("failed to load client", "client_id", cmd.ClientID, "error", err)
		return nil, errors.NewInternalError("failed to load client")
	}
	if c == nil {
		return nil, errors.NewFieldValidationError("client_id", fmt.Sprintf("client %d does not exist", cmd.ClientID))
	}

	a, err := uc.applianceRepo.GetByID(ctx, cmd.ApplianceID)
	if err != nil {
		uc.logger.Errorw("failed to load appliance", "appliance_id", cmd.ApplianceID, "error", err)
		return nil, errors.NewInternalError("failed to load appliance")
	}
	if a == nil || a.ClientID() != c.ID() {
		return nil, errors.NewFieldValidationError("appliance_id", "appliance does not belong to the client")
	}

	svc, err := service.NewService(c.ID(), a.ID(), cmd.Description, partnerID)
	if err != nil {
		return nil, errors.NewFieldValidationError("description", err.Error())
	}
	if err := uc.serviceRepo.Create(ctx, svc); err != nil {
		uc.logger.Errorw("failed to save service", "error", err)
		return nil, errors.NewInternalError("failed to save service")
	}

	uc.logger.Infow("service created", "service_id", svc.ID(), "client_id", c.ID())

	out := dto.ToServiceDTO(svc)
	out.ClientName = c.FullName()
	out.ApplianceLabel = a.Label()
	return out, nil
}
