package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type UpdateSparePartOrderCommand struct {
	OrderID           uint
	Status            *string
	Notes             *string
	SupplierName      *string
	EstimatedCost     *float64
	EstimatedDelivery *time.Time
}

type UpdateSparePartOrderResult struct {
	Order         *dto.SparePartOrderDTO
	ServiceStatus string
	Warnings      []string
}

type UpdateSparePartOrderUseCase struct {
	txMgr       db.TxRunner
	orderRepo   sparepart.SparePartOrderRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func NewUpdateSparePartOrderUseCase(
	txMgr db.TxRunner,
	orderRepo sparepart.SparePartOrderRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *UpdateSparePartOrderUseCase {
	return &UpdateSparePartOrderUseCase{
		txMgr:       txMgr,
		orderRepo:   orderRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute applies an admin or supplier edit. Moving the order to delivered or
// cancelled resolves it; the owning service leaves waiting_parts once its last
// open order resolves.
func (uc *UpdateSparePartOrderUseCase) Execute(ctx context.Context, p shared.Principal, cmd UpdateSparePartOrderCommand) (*UpdateSparePartOrderResult, error) {
	uc.logger.Infow("executing update spare part order use case",
		"order_id", cmd.OrderID,
		"user_id", p.UserID,
		"status", cmd.Status)

	if !p.IsAdmin() && !p.IsSupplier() {
		return nil, errors.NewForbiddenError("only administrators and suppliers may update orders")
	}

	update := sparepart.OrderUpdate{
		Notes:             cmd.Notes,
		SupplierName:      cmd.SupplierName,
		EstimatedCost:     cmd.EstimatedCost,
		EstimatedDelivery: cmd.EstimatedDelivery,
	}
	if cmd.Status != nil {
		status, err := vo.NewOrderStatus(*cmd.Status)
		if err != nil {
			return nil, errors.NewFieldValidationError("status", err.Error())
		}
		update.Status = &status
	}

	var (
		order   *sparepart.SparePartOrder
		outcome *coordinator.Outcome
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		order, err = uc.orderRepo.GetByID(txCtx, cmd.OrderID)
		if err != nil {
			uc.logger.Errorw("failed to load spare part order", "order_id", cmd.OrderID, "error", err)
			return errors.NewInternalError("failed to load spare part order")
		}
		if order == nil {
			return errors.NewNotFoundError(fmt.Sprintf("spare part order %d not found", cmd.OrderID))
		}

		resolved, err := order.Apply(update, time.Now().UTC())
		if err != nil {
			if stderrors.Is(err, sparepart.ErrInvalidStatusChange) {
				return errors.NewFieldValidationError("status", err.Error())
			}
			return errors.FromDomainValidation(err)
		}

		if err := uc.orderRepo.Update(txCtx, order); err != nil {
			uc.logger.Errorw("failed to update spare part order", "order_id", order.ID(), "error", err)
			return errors.NewInternalError("failed to update spare part order")
		}

		if !resolved || order.ServiceID() == nil {
			return nil
		}
		orderID := order.ID()
		outcome, err = uc.coordinator.Apply(txCtx, p, *order.ServiceID(),
			service.Event{Kind: service.EventPartsResolved},
			coordinator.Trigger{OrderID: &orderID, OrderStatus: order.Status().String(), PartName: order.PartName(), Note: order.Notes()})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &UpdateSparePartOrderResult{Order: dto.ToSparePartOrderDTO(order)}
	if outcome != nil {
		result.ServiceStatus = outcome.Decision.To.String()
		result.Warnings = uc.coordinator.Finish(ctx, outcome)
	}

	uc.logger.Infow("spare part order updated",
		"order_id", order.ID(),
		"status", order.Status(),
		"service_status", result.ServiceStatus)

	return result, nil
}
