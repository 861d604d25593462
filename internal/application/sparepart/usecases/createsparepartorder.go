package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type CreateSparePartOrderCommand struct {
	ServiceID      *uint
	PartName       string
	PartNumber     string
	Quantity       int
	Urgency        string
	WarrantyStatus string
	Description    string
}

type CreateSparePartOrderResult struct {
	Order *dto.SparePartOrderDTO
	// ServiceStatus is the owning service's status after intake, empty for
	// orders not tied to a service.
	ServiceStatus string
	Warnings      []string
}

type CreateSparePartOrderUseCase struct {
	txMgr       db.TxRunner
	orderRepo   sparepart.SparePartOrderRepository
	serviceRepo service.ServiceRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func NewCreateSparePartOrderUseCase(
	txMgr db.TxRunner,
	orderRepo sparepart.SparePartOrderRepository,
	serviceRepo service.ServiceRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *CreateSparePartOrderUseCase {
	return &CreateSparePartOrderUseCase{
		txMgr:       txMgr,
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute validates and stores a spare part request. When the order belongs to
// a service, the insert and the resulting status transition commit together.
func (uc *CreateSparePartOrderUseCase) Execute(ctx context.Context, p shared.Principal, cmd CreateSparePartOrderCommand) (*CreateSparePartOrderResult, error) {
	uc.logger.Infow("executing create spare part order use case",
		"user_id", p.UserID,
		"role", p.Role,
		"service_id", cmd.ServiceID,
		"part_name", cmd.PartName)

	if !p.IsAdmin() && !p.IsTechnician() && !p.IsBusinessPartner() {
		return nil, errors.NewForbiddenError("role may not request spare parts")
	}
	if cmd.ServiceID == nil && !p.IsAdmin() {
		return nil, errors.NewFieldValidationError("service_id", "service_id is required")
	}
	if cmd.ServiceID != nil && *cmd.ServiceID == 0 {
		return nil, errors.NewFieldValidationError("service_id", "service_id must be a positive integer")
	}

	order, err := sparepart.NewSparePartOrder(sparepart.NewOrderParams{
		ServiceID:      cmd.ServiceID,
		PartName:       cmd.PartName,
		PartNumber:     cmd.PartNumber,
		Quantity:       cmd.Quantity,
		Urgency:        cmd.Urgency,
		WarrantyStatus: cmd.WarrantyStatus,
		Description:    cmd.Description,
		RequestedBy:    p.UserID,
	})
	if err != nil {
		uc.logger.Warnw("invalid spare part order", "user_id", p.UserID, "error", err)
		return nil, errors.FromDomainValidation(err)
	}

	var outcome *coordinator.Outcome
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.ServiceID != nil {
			if err := uc.checkService(txCtx, p, *cmd.ServiceID); err != nil {
				return err
			}
		}

		if err := uc.orderRepo.Create(txCtx, order); err != nil {
			uc.logger.Errorw("failed to save spare part order", "error", err)
			return errors.NewInternalError("failed to save spare part order")
		}

		if cmd.ServiceID == nil {
			return nil
		}
		orderID := order.ID()
		outcome, err = uc.coordinator.Apply(txCtx, p, *cmd.ServiceID,
			service.Event{Kind: service.EventPartOrdered},
			coordinator.Trigger{OrderID: &orderID, OrderStatus: order.Status().String(), PartName: order.PartName()})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CreateSparePartOrderResult{Order: dto.ToSparePartOrderDTO(order)}
	if outcome != nil {
		result.ServiceStatus = outcome.Decision.To.String()
		result.Warnings = uc.coordinator.Finish(ctx, outcome)
	}

	uc.logger.Infow("spare part order created",
		"order_id", order.ID(),
		"service_id", cmd.ServiceID,
		"service_status", result.ServiceStatus,
		"warnings", len(result.Warnings))

	return result, nil
}

func (uc *CreateSparePartOrderUseCase) checkService(ctx context.Context, p shared.Principal, serviceID uint) error {
	svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to load service", "service_id", serviceID, "error", err)
		return errors.NewInternalError("failed to load service")
	}
	if svc == nil {
		return errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}
	if !svc.WorkableBy(p) {
		return errors.NewForbiddenError("service is not assigned to you")
	}
	if svc.Status().IsClosedForWork() {
		return errors.NewFieldValidationError("service_id", fmt.Sprintf("service is %s and accepts no part orders", svc.Status()))
	}
	return nil
}
