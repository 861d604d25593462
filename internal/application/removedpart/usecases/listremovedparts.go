package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/removedpart/dto"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type ListRemovedPartsUseCase struct {
	partRepo    removedpart.RemovedPartRepository
	serviceRepo service.ServiceRepository
	logger      logger.Interface
}

func NewListRemovedPartsUseCase(
	partRepo removedpart.RemovedPartRepository,
	serviceRepo service.ServiceRepository,
	logger logger.Interface,
) *ListRemovedPartsUseCase {
	return &ListRemovedPartsUseCase{partRepo: partRepo, serviceRepo: serviceRepo, logger: logger}
}

func (uc *ListRemovedPartsUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint) ([]*dto.RemovedPartDTO, error) {
	svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to load service", "service_id", serviceID, "error", err)
		return nil, errors.NewInternalError("failed to load service")
	}
	if svc == nil || !svc.VisibleTo(p) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}

	parts, err := uc.partRepo.ListByServiceID(ctx, serviceID)
	if err != nil {
		uc.logger.Errorw("failed to list removed parts", "service_id", serviceID, "error", err)
		return nil, errors.NewInternalError("failed to list removed parts")
	}
	return dto.ToRemovedPartDTOs(parts), nil
}
