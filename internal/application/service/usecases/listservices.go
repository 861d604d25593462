package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/biztime"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type ListServicesQuery struct {
	Status       string
	TechnicianID *uint
	ClientID     *uint
	// DateFrom and DateTo bound created_at as inclusive business days (YYYY-MM-DD).
	DateFrom string
	DateTo   string
	Page     int
	PageSize int
}

type ListServicesResult struct {
	Services []*dto.ServiceDTO
	Total    int64
	Page     int
	PageSize int
}

type ListServicesUseCase struct {
	serviceRepo service.ServiceRepository
	logger      logger.Interface
}

func NewListServicesUseCase(serviceRepo service.ServiceRepository, logger logger.Interface) *ListServicesUseCase {
	return &ListServicesUseCase{serviceRepo: serviceRepo, logger: logger}
}

// Execute lists services scoped to the principal: administrators see all,
// technicians their assignments, partners their own tickets and customers
// their own appliances.
func (uc *ListServicesUseCase) Execute(ctx context.Context, p shared.Principal, query ListServicesQuery) (*ListServicesResult, error) {
	filter, err := buildServiceFilter(p, query)
	if err != nil {
		return nil, err
	}
	pg := utils.ValidatePagination(query.Page, query.PageSize)
	filter.Page = pg.Page
	filter.PageSize = pg.PageSize

	services, total, err := uc.serviceRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list services", "user_id", p.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list services")
	}

	return &ListServicesResult{
		Services: dto.ToServiceDTOs(services),
		Total:    total,
		Page:     pg.Page,
		PageSize: pg.PageSize,
	}, nil
}

func buildServiceFilter(p shared.Principal, query ListServicesQuery) (service.ServiceFilter, error) {
	filter := service.ServiceFilter{
		TechnicianID: query.TechnicianID,
		ClientID:     query.ClientID,
	}

	switch {
	case p.IsAdmin():
	case p.IsTechnician():
		id := p.UserID
		filter.TechnicianID = &id
	case p.IsBusinessPartner():
		id := p.UserID
		filter.BusinessPartnerID = &id
	case p.IsCustomer():
		if p.ClientID == nil {
			return filter, errors.NewForbiddenError("customer account is not linked to a client")
		}
		filter.ClientID = p.ClientID
	default:
		return filter, errors.NewForbiddenError("role may not list services")
	}

	if query.Status != "" {
		status, err := vo.NewServiceStatus(query.Status)
		if err != nil {
			return filter, errors.NewFieldValidationError("status", err.Error())
		}
		filter.Status = &status
	}
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
