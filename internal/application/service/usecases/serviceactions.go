package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/application/service/dto"
	"github.com/frigoservis/servis/internal/domain/service"
	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/domain/user"
	"github.com/frigoservis/servis/internal/shared/authorization"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

// ServiceActionResult is returned by every action that runs through the coordinator.
type ServiceActionResult struct {
	Service   *dto.ServiceDTO
	OldStatus string
	Changed   bool
	Warnings  []string
}

func actionResult(out *coordinator.Outcome, warnings []string) *ServiceActionResult {
	return &ServiceActionResult{
		Service:   dto.ToServiceDTO(out.Service),
		OldStatus: out.Decision.From.String(),
		Changed:   out.Decision.Changed(),
		Warnings:  warnings,
	}
}

// actionRunner holds what every service action needs: a visibility and work
// check followed by one coordinator run.
type actionRunner struct {
	serviceRepo service.ServiceRepository
	coordinator StatusCoordinator
	logger      logger.Interface
}

func (r actionRunner) run(
	ctx context.Context,
	p shared.Principal,
	serviceID uint,
	ev service.Event,
	trigger coordinator.Trigger,
	adminOnly bool,
) (*ServiceActionResult, error) {
	svc, err := loadVisible(ctx, r.serviceRepo, p, serviceID)
	if err != nil {
		return nil, err
	}
	if adminOnly && !p.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may perform this action")
	}
	if !p.IsAdmin() && !(p.IsTechnician() && svc.WorkableBy(p)) {
		return nil, errors.NewForbiddenError("service is not assigned to you")
	}

	out, warnings, err := r.coordinator.Run(ctx, p, serviceID, ev, trigger)
	if err != nil {
		return nil, err
	}
	r.logger.Infow("service action applied",
		"service_id", serviceID,
		"event", ev.Kind,
		"old_status", out.Decision.From,
		"new_status", out.Decision.To,
		"warnings", len(warnings))
	return actionResult(out, warnings), nil
}

type AssignTechnicianUseCase struct {
	actionRunner
	userRepo user.UserRepository
}

func NewAssignTechnicianUseCase(
	serviceRepo service.ServiceRepository,
	userRepo user.UserRepository,
	coordinator StatusCoordinator,
	logger logger.Interface,
) *AssignTechnicianUseCase {
	return &AssignTechnicianUseCase{
		actionRunner: actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger},
		userRepo:     userRepo,
	}
}

func (uc *AssignTechnicianUseCase) Execute(ctx context.Context, p shared.Principal, serviceID, technicianID uint) (*ServiceActionResult, error) {
	uc.logger.Infow("executing assign technician use case", "service_id", serviceID, "technician_id", technicianID)

	if !p.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may assign technicians")
	}
	tech, err := uc.userRepo.GetByID(ctx, technicianID)
	if err != nil {
		uc.logger.Errorw("failed to load technician", "technician_id", technicianID, "error", err)
		return nil, errors.NewInternalError("failed to load technician")
	}
	if tech == nil || tech.Role() != authorization.RoleTechnician || !tech.IsActive() {
		return nil, errors.NewFieldValidationError("technician_id", fmt.Sprintf("user %d is not an active technician", technicianID))
	}

	return uc.run(ctx, p, serviceID,
		service.Event{Kind: service.EventAssigned, TechnicianID: technicianID},
		coordinator.Trigger{Note: tech.FullName()}, true)
}

type ChangeServiceStatusCommand struct {
	ServiceID uint
	Status    string
	Note      string
}

type ChangeServiceStatusUseCase struct {
	actionRunner
}

func NewChangeServiceStatusUseCase(serviceRepo service.ServiceRepository, coordinator StatusCoordinator, logger logger.Interface) *ChangeServiceStatusUseCase {
	return &ChangeServiceStatusUseCase{actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger}}
}

// Execute applies a manual status change. Part driven states and completion
// have their own actions and are rejected here.
func (uc *ChangeServiceStatusUseCase) Execute(ctx context.Context, p shared.Principal, cmd ChangeServiceStatusCommand) (*ServiceActionResult, error) {
	uc.logger.Infow("executing change service status use case", "service_id", cmd.ServiceID, "status", cmd.Status, "user_id", p.UserID)

	target, err := vo.NewServiceStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewFieldValidationError("status", err.Error())
	}
	switch target {
	case vo.StatusWaitingParts, vo.StatusDevicePartsRemoved:
		return nil, errors.NewFieldValidationError("status", fmt.Sprintf("%s is set by part orders and removed parts", target))
	case vo.StatusCompleted:
		return nil, errors.NewFieldValidationError("status", "use the complete action to finish a service")
	}

	return uc.run(ctx, p, cmd.ServiceID,
		service.Event{Kind: service.EventStatusSet, Target: target},
		coordinator.Trigger{Note: cmd.Note}, false)
}

type CompleteServiceCommand struct {
	ServiceID         uint
	Cost              *float64
	TechnicianNotes   string
	IsCompletelyFixed *bool
}

type CompleteServiceUseCase struct {
	actionRunner
}

func NewCompleteServiceUseCase(serviceRepo service.ServiceRepository, coordinator StatusCoordinator, logger logger.Interface) *CompleteServiceUseCase {
	return &CompleteServiceUseCase{actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger}}
}

func (uc *CompleteServiceUseCase) Execute(ctx context.Context, p shared.Principal, cmd CompleteServiceCommand) (*ServiceActionResult, error) {
	uc.logger.Infow("executing complete service use case", "service_id", cmd.ServiceID, "user_id", p.UserID)

	return uc.run(ctx, p, cmd.ServiceID, service.Event{
		Kind: service.EventCompleted,
		Completion: &service.Completion{
			Cost:              cmd.Cost,
			TechnicianNotes:   cmd.TechnicianNotes,
			IsCompletelyFixed: cmd.IsCompletelyFixed,
		},
	}, coordinator.Trigger{}, false)
}

type DeliverServiceUseCase struct {
	actionRunner
}

func NewDeliverServiceUseCase(serviceRepo service.ServiceRepository, coordinator StatusCoordinator, logger logger.Interface) *DeliverServiceUseCase {
	return &DeliverServiceUseCase{actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger}}
}

func (uc *DeliverServiceUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint, note string) (*ServiceActionResult, error) {
	uc.logger.Infow("executing deliver service use case", "service_id", serviceID)
	return uc.run(ctx, p, serviceID, service.Event{Kind: service.EventDelivered}, coordinator.Trigger{Note: note}, true)
}

type ReturnFromWaitingCommand struct {
	ServiceID uint
	// Force returns the service even while orders are still open.
	Force bool
	Note  string
}

type ReturnFromWaitingUseCase struct {
	actionRunner
}

func NewReturnFromWaitingUseCase(serviceRepo service.ServiceRepository, coordinator StatusCoordinator, logger logger.Interface) *ReturnFromWaitingUseCase {
	return &ReturnFromWaitingUseCase{actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger}}
}

// Execute moves a service from waiting_parts back to in_progress. It is a
// no-op for a service already in progress and a conflict while orders are
// open, unless forced.
func (uc *ReturnFromWaitingUseCase) Execute(ctx context.Context, p shared.Principal, cmd ReturnFromWaitingCommand) (*ServiceActionResult, error) {
	uc.logger.Infow("executing return from waiting use case", "service_id", cmd.ServiceID, "force", cmd.Force)
	return uc.run(ctx, p, cmd.ServiceID,
		service.Event{Kind: service.EventReturnFromWaiting, Force: cmd.Force},
		coordinator.Trigger{Note: cmd.Note}, true)
}

type SendReminderUseCase struct {
	actionRunner
}

func NewSendReminderUseCase(serviceRepo service.ServiceRepository, coordinator StatusCoordinator, logger logger.Interface) *SendReminderUseCase {
	return &SendReminderUseCase{actionRunner{serviceRepo: serviceRepo, coordinator: coordinator, logger: logger}}
}

// Execute queues an appointment reminder to the client. The status is unchanged.
func (uc *SendReminderUseCase) Execute(ctx context.Context, p shared.Principal, serviceID uint, note string) (*ServiceActionResult, error) {
	uc.logger.Infow("executing send reminder use case", "service_id", serviceID)
	return uc.run(ctx, p, serviceID, service.Event{Kind: service.EventAppointmentReminder}, coordinator.Trigger{Note: note}, true)
}
