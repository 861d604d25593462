package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// DeleteServiceUseCase removes a service that has no spare part orders and no
// removed parts. Orders and parts always reference an existing service.
type DeleteServiceUseCase struct {
	txMgr       db.TxRunner
	serviceRepo service.ServiceRepository
	orderRepo   sparepart.SparePartOrderRepository
	partRepo    removedpart.RemovedPartRepository
	logger      logger.Interface
}

func NewDeleteServiceUseCase(
	txMgr db.TxRunner,
	serviceRepo service.ServiceRepository,
	orderRepo sparepart.SparePartOrderRepository,
	partRepo removedpart.RemovedPartRepository,
	logger logger.Interface,
) *DeleteServiceUseCase {
	return &DeleteServiceUseCase{
		txMgr:       txMgr,
		serviceRepo: serviceRepo,
		orderRepo:   orderRepo,
		partRepo:    partRepo,
		logger:      logger,
	}
}

func (uc *DeleteServiceUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint) error {
	uc.logger.Infow("executing delete service use case", "service_id", serviceID, "user_id", p.UserID)

	if !p.IsAdmin() {
		return errors.NewForbiddenError("only administrators may delete services")
	}

	return uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		svc, err := uc.serviceRepo.GetByID(txCtx, serviceID)
		if err != nil {
			uc.logger.Errorw("failed to load service", "service_id", serviceID, "error", err)
			return errors.NewInternalError("failed to load service")
		}
		if svc == nil {
			return errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
		}

		orders, err := uc.orderRepo.ListByServiceID(txCtx, serviceID)
		if err != nil {
			uc.logger.Errorw("failed to list spare part orders", "service_id", serviceID, "error", err)
			return errors.NewInternalError("failed to check spare part orders")
		}
		parts, err := uc.partRepo.ListByServiceID(txCtx, serviceID)
		if err != nil {
			uc.logger.Errorw("failed to list removed parts", "service_id", serviceID, "error", err)
			return errors.NewInternalError("failed to check removed parts")
		}
		if len(orders) > 0 || len(parts) > 0 {
			uc.logger.Warnw("refusing to delete service with parts",
				"service_id", serviceID,
				"orders", len(orders),
				"removed_parts", len(parts))
			return errors.NewConflictError(fmt.Sprintf(
				"service %d has %d spare part order(s) and %d removed part(s); cancel the service instead",
				serviceID, len(orders), len(parts)))
		}

		if err := uc.serviceRepo.Delete(txCtx, serviceID); err != nil {
			uc.logger.Errorw("failed to delete service", "service_id", serviceID, "error", err)
			return errors.NewInternalError("failed to delete service")
		}

		uc.logger.Infow("service deleted", "service_id", serviceID, "status", svc.Status())
		return nil
	})
}
