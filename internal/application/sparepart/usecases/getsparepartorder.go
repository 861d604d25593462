package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type GetSparePartOrderUseCase struct {
	orderRepo   sparepart.SparePartOrderRepository
	serviceRepo service.ServiceRepository
	logger      logger.Interface
}

func NewGetSparePartOrderUseCase(
	orderRepo sparepart.SparePartOrderRepository,
	serviceRepo service.ServiceRepository,
	logger logger.Interface,
) *GetSparePartOrderUseCase {
	return &GetSparePartOrderUseCase{
		orderRepo:   orderRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Execute returns an order. Administrators and suppliers see every order;
// everyone else only orders of services they can see. Hidden orders read as missing.
func (uc *GetSparePartOrderUseCase) Execute(ctx context.Context, p shared.Principal, orderID uint) (*dto.SparePartOrderDTO, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		uc.logger.Errorw("failed to load spare part order", "order_id", orderID, "error", err)
		return nil, errors.NewInternalError("failed to load spare part order")
	}
	notFound := errors.NewNotFoundError(fmt.Sprintf("spare part order %d not found", orderID))
	if order == nil {
		return nil, notFound
	}

	if p.IsAdmin() || p.IsSupplier() || order.RequestedBy() == p.UserID {
		return dto.ToSparePartOrderDTO(order), nil
	}
	if order.ServiceID() == nil {
		return nil, notFound
	}

	svc, err := uc.serviceRepo.GetByID(ctx, *order.ServiceID())
	if err != nil {
		uc.logger.Errorw("failed to load service", "service_id", *order.ServiceID(), "error", err)
		return nil, errors.NewInternalError("failed to load service")
	}
	if svc == nil || !svc.VisibleTo(p) {
		return nil, notFound
	}
	return dto.ToSparePartOrderDTO(order), nil
}
