package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/sparepart/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/sparepart"
	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type ListSparePartOrdersQuery struct {
	Status    string
	Urgency   string
	ServiceID *uint
	// DateFrom and DateTo are inclusive business days in YYYY-MM-DD form.
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

type ListSparePartOrdersResult struct {
	Orders   []*dto.SparePartOrderDTO
	Total    int64
	Page     int
	PageSize int
}

type ListSparePartOrdersUseCase struct {
	orderRepo sparepart.SparePartOrderRepository
	logger    logger.Interface
}

func NewListSparePartOrdersUseCase(orderRepo sparepart.SparePartOrderRepository, logger logger.Interface) *ListSparePartOrdersUseCase {
	return &ListSparePartOrdersUseCase{orderRepo: orderRepo, logger: logger}
}

func (uc *ListSparePartOrdersUseCase) Execute(ctx context.Context, p shared.Principal, query ListSparePartOrdersQuery) (*ListSparePartOrdersResult, error) {
	if !p.IsAdmin() && !p.IsSupplier() {
		return nil, errors.NewForbiddenError("only administrators and suppliers may list all orders")
	}

	filter, err := buildOrderFilter(query)
	if err != nil {
		return nil, err
	}
	pg := utils.ValidatePagination(query.Page, query.PageSize)
	filter.Page = pg.Page
	filter.PageSize = pg.PageSize

	orders, total, err := uc.orderRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list spare part orders", "error", err)
		return nil, errors.NewInternalError("failed to list spare part orders")
	}

	return &ListSparePartOrdersResult{
		Orders:   dto.ToSparePartOrderDTOs(orders),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func buildOrderFilter(query ListSparePartOrdersQuery) (sparepart.OrderFilter, error) {
	var filter sparepart.OrderFilter
	if query.Status != "" {
		status, err := vo.NewOrderStatus(query.Status)
		if err != nil {
			return filter, errors.NewFieldValidationError("status", err.Error())
		}
		filter.Status = &status
	}
	if query.Urgency != "" {
		urgency, err := vo.NewUrgency(query.Urgency)
		if err != nil {
			return filter, errors.NewFieldValidationError("urgency", err.Error())
		}
		filter.Urgency = &urgency
	}
	filter.ServiceID = query.ServiceID

	if query.DateFrom != "" {
		from, err := biztime.ParseDate(query.DateFrom)
		if err != nil {
			return filter, errors.NewFieldValidationError("date_from", err.Error())
		}
		start, _ := biztime.DayBoundsUTC(from)
		filter.CreatedFrom = &start
	}
	if query.DateTo != "" {
		to, err := biztime.ParseDate(query.DateTo)
		if err != nil {
			return filter, errors.NewFieldValidationError("date_to", err.Error())
		}
		_, end := biztime.DayBoundsUTC(to)
		filter.CreatedTo = &end
	}
	if filter.CreatedFrom != nil && filter.CreatedTo != nil && !filter.CreatedFrom.Before(*filter.CreatedTo) {
		return filter, errors.NewValidationError(fmt.Sprintf("date_from %s is after date_to %s", query.DateFrom, query.DateTo))
	}
	return filter, nil
}

type ListServiceSparePartOrdersUseCase struct {
	orderRepo   sparepart.SparePartOrderRepository
	serviceRepo service.ServiceRepository
	logger      logger.Interface
}

func NewListServiceSparePartOrdersUseCase(
	orderRepo sparepart.SparePartOrderRepository,
	serviceRepo service.ServiceRepository,
	logger logger.Interface,
) *ListServiceSparePartOrdersUseCase {
	return &ListServiceSparePartOrdersUseCase{orderRepo: orderRepo, serviceRepo: serviceRepo, logger: logger}
}

// Execute lists the orders of one service the principal can see.
func (uc *ListServiceSparePartOrdersUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.SparePartOrderDTO, error) {
	svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to load service", "service_id", serviceID, "error", err)
		return nil, errors.NewInternalError("failed to load service")
	}
	if svc == nil || !(svc.VisibleTo(p) || p.IsSupplier()) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}

	orders, err := uc.orderRepo.ListByServiceID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to list service orders", "service_id", serviceID, "error", err)
		return nil, errors.NewInternalError("failed to list spare part orders")
	}
	return dto.ToSparePartOrderDTOs(orders), nil
}
