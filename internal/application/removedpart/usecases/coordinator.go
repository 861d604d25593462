package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
)

type StatusCoordinator interface {
	Apply(ctx context.Context, p shared.Principal, serviceID uint, ev service.Event, trigger coordinator.Trigger) (*coordinator.Outcome, error)
	Finish(ctx context.Context, out *coordinator.Outcome) []string
}

func loadWorkableService(ctx context.Context, repo service.ServiceRepository, p shared.Principal, serviceID uint) (*service.Service, error) {
	svc, err := repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load service")
	}
	if svc == nil || !svc.VisibleTo(p) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}
	if !p.IsAdmin() && !p.IsTechnician() {
		return nil, errors.NewForbiddenError("only administrators and technicians may record removed parts")
	}
	if !svc.WorkableBy(p) {
		return nil, errors.NewForbiddenError("service is not assigned to you")
	}
	return svc, nil
}
