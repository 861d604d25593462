package usecases

import (
	"context"
	"strings"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

const (
	unspecifiedPartName = "unspecified part"
	legacyRemovalReason = "recorded through the parts-removed endpoint"
)

type MarkPartsRemovedResult struct {
	// PartID is the placeholder part recorded by this call, nil when the
	// service already had a part out.
	PartID        *uint
	ServiceStatus string
	Warnings      []string
}

// MarkPartsRemovedUseCase backs the legacy parts-removed endpoint. When no
// removed part is outstanding it records a placeholder part, so the service
// leaves device_parts_removed through the usual part return.
type MarkPartsRemovedUseCase struct {
	txMgr       db.TxRunner
	partRepo    removedpart.RemovedPartRepository
	serviceRepo service.ServiceRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func NewMarkPartsRemovedUseCase(
	txMgr db.TxRunner,
	partRepo removedpart.RemovedPartRepository,
	serviceRepo service.ServiceRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *MarkPartsRemovedUseCase {
	return &MarkPartsRemovedUseCase{
		txMgr:       txMgr,
		partRepo:    partRepo,
		serviceRepo: serviceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

func (uc *MarkPartsRemovedUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint, note string) (*MarkPartsRemovedResult, error) {
	uc.logger.Warnw("deprecated parts-removed trigger used", "service_id", serviceID, "user_id", p.UserID)

	result := &MarkPartsRemovedResult{}
	var outcome *coordinator.Outcome
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := loadWorkableService(txCtx, uc.serviceRepo, p, serviceID); err != nil {
			return err
		}

		out, err := uc.partRepo.CountOutByServiceID(txCtx, serviceID)
		if err != nil {
			uc.logger.Errorw("failed to count removed parts", "service_id", serviceID, "error", err)
			return errors.NewInternalError("failed to count removed parts")
		}

		trigger := coordinator.Trigger{Note: note}
		if out == 0 {
			reason := strings.TrimSpace(note)
			if reason == "" {
				reason = legacyRemovalReason
			}
			part, err := removedpart.NewRemovedPart(removedpart.NewRemovedPartParams{
				ServiceID:     serviceID,
				PartName:      unspecifiedPartName,
				RemovalReason: reason,
			})
			if err != nil {
				return errors.FromDomainValidation(err)
			}
			if err := uc.partRepo.Create(txCtx, part); err != nil {
				uc.logger.Errorw("failed to save placeholder removed part", "service_id", serviceID, "error", err)
				return errors.NewInternalError("failed to save removed part")
			}
			partID := part.ID()
			result.PartID = &partID
			trigger.RemovedPartID = &partID
			trigger.PartName = part.PartName()
		}

		outcome, err = uc.coordinator.Apply(txCtx, p, serviceID, service.Event{Kind: service.EventPartRemoved}, trigger)
		return err
	})
	if err != nil {
		return nil, err
	}

	result.ServiceStatus = outcome.Decision.To.String()
	result.Warnings = uc.coordinator.Finish(ctx, outcome)
	return result, nil
}
