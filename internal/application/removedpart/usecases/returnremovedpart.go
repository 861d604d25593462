package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/application/removedpart/dto"
	"github.com/frigoservis/servis/internal/domain/removedpart"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/db"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type ReturnRemovedPartCommand struct {
	PartID uint
	// ReturnedAt defaults to now.
	ReturnedAt *time.Time
	Notes      string
}

type ReturnRemovedPartResult struct {
	Part          *dto.RemovedPartDTO
	ServiceStatus string
	Warnings      []string
}

type ReturnRemovedPartUseCase struct {
	txMgr       db.TxRunner
	partRepo    removedpart.RemovedPartRepository
	serviceRepo service.ServiceRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func NewReturnRemovedPartUseCase(
	txMgr db.TxRunner,
	partRepo removedpart.RemovedPartRepository,
	serviceRepo service.ServiceRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *ReturnRemovedPartUseCase {
	return &ReturnRemovedPartUseCase{
		txMgr:       txMgr,
		partRepo:    partRepo,
		serviceRepo: serviceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute marks a part as returned to the device. The service goes back to
// in_progress once no other removed part is still out.
func (uc *ReturnRemovedPartUseCase) Execute(ctx context.Context, p shared.Principal, cmd ReturnRemovedPartCommand) (*ReturnRemovedPartResult, error) {
	uc.logger.Infow("executing return removed part use case", "removed_part_id", cmd.PartID, "user_id", p.UserID)

	returnedAt := time.Now().UTC()
	if cmd.ReturnedAt != nil {
		returnedAt = *cmd.ReturnedAt
	}

	var (
		part    *removedpart.RemovedPart
		outcome *coordinator.Outcome
	)
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		part, err = uc.partRepo.GetByID(txCtx, cmd.PartID)
		if err != nil {
			uc.logger.Errorw("failed to load removed part", "removed_part_id", cmd.PartID, "error", err)
			return errors.NewInternalError("failed to load removed part")
		}
		if part == nil {
			return errors.NewNotFoundError(fmt.Sprintf("removed part %d not found", cmd.PartID))
		}
		if _, err := loadWorkableService(txCtx, uc.serviceRepo, p, part.ServiceID()); err != nil {
			return err
		}

		if err := part.MarkReturned(returnedAt, cmd.Notes); err != nil {
			if stderrors.Is(err, removedpart.ErrAlreadyReturned) {
				return errors.NewConflictError("removed part is already returned")
			}
			return errors.FromDomainValidation(err)
		}
		if err := uc.partRepo.Update(txCtx, part); err != nil {
			uc.logger.Errorw("failed to update removed part", "removed_part_id", part.ID(), "error", err)
			return errors.NewInternalError("failed to update removed part")
		}

		partID := part.ID()
		outcome, err = uc.coordinator.Apply(txCtx, p, part.ServiceID(),
			service.Event{Kind: service.EventPartReturned},
			coordinator.Trigger{RemovedPartID: &partID, PartName: part.PartName(), Note: cmd.Notes})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &ReturnRemovedPartResult{
		Part:          dto.ToRemovedPartDTO(part),
		ServiceStatus: outcome.Decision.To.String(),
		Warnings:      uc.coordinator.Finish(ctx, outcome),
	}
	uc.logger.Infow("removed part returned",
		"removed_part_id", part.ID(),
		"service_id", part.ServiceID(),
		"service_status", result.ServiceStatus)
	return result, nil
}
