package usecases

import (
	"context"
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

type CreateRemovedPartCommand struct {
	ServiceID          uint
	PartName           string
	RemovalDate        *time.Time
	RemovalReason      string
	CurrentLocation    string
	ExpectedReturnDate *time.Time
	PartStatus         string
	TechnicianNotes    string
}

type CreateRemovedPartResult struct {
	Part          *dto.RemovedPartDTO
	ServiceStatus string
	Warnings      []string
}

type CreateRemovedPartUseCase struct {
	txMgr       db.TxRunner
	partRepo    removedpart.RemovedPartRepository
	serviceRepo service.ServiceRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func NewCreateRemovedPartUseCase(
	txMgr db.TxRunner,
	partRepo removedpart.RemovedPartRepository,
	serviceRepo service.ServiceRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *CreateRemovedPartUseCase {
	return &CreateRemovedPartUseCase{
		txMgr:       txMgr,
		partRepo:    partRepo,
		serviceRepo: serviceRepo,
		coordinator: coordinator,
		logger:      logger,
	}
}

// Execute records a part taken off the device and moves the service to
// device_parts_removed in the same transaction.
func (uc *CreateRemovedPartUseCase) Execute(ctx context.Context, p shared.Principal, cmd CreateRemovedPartCommand) (*CreateRemovedPartResult, error) {
	uc.logger.Infow("executing create removed part use case",
		"service_id", cmd.ServiceID,
		"part_name", cmd.PartName,
		"user_id", p.UserID)

	part, err := removedpart.NewRemovedPart(removedpart.NewRemovedPartParams{
		ServiceID:          cmd.ServiceID,
		PartName:           cmd.PartName,
		RemovalDate:        cmd.RemovalDate,
		RemovalReason:      cmd.RemovalReason,
		CurrentLocation:    cmd.CurrentLocation,
		ExpectedReturnDate: cmd.ExpectedReturnDate,
		PartStatus:         cmd.PartStatus,
		TechnicianNotes:    cmd.TechnicianNotes,
	})
	if err != nil {
		uc.logger.Warnw("invalid removed part", "service_id", cmd.ServiceID, "error", err)
		return nil, errors.FromDomainValidation(err)
	}

	var outcome *coordinator.Outcome
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := loadWorkableService(txCtx, uc.serviceRepo, p, cmd.ServiceID); err != nil {
			return err
		}
		if err := uc.partRepo.Create(txCtx, part); err != nil {
			uc.logger.Errorw("failed to save removed part", "service_id", cmd.ServiceID, "error", err)
			return errors.NewInternalError("failed to save removed part")
		}
		partID := part.ID()
		outcome, err = uc.coordinator.Apply(txCtx, p, cmd.ServiceID,
			service.Event{Kind: service.EventPartRemoved},
			coordinator.Trigger{RemovedPartID: &partID, PartName: part.PartName(), Note: part.RemovalReason()})
		return err
	})
	if err != nil {
		return nil, err
	}

	result := &CreateRemovedPartResult{
		Part:          dto.ToRemovedPartDTO(part),
		ServiceStatus: outcome.Decision.To.String(),
		Warnings:      uc.coordinator.Finish(ctx, outcome),
	}
	uc.logger.Infow("removed part recorded", "removed_part_id", part.ID(), "service_id", cmd.ServiceID)
	return result, nil
}
