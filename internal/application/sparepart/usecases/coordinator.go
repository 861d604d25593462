package usecases

import (
	"context"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
)

// StatusCoordinator applies part lifecycle events to the owning service.
type StatusCoordinator interface {
	Apply(ctx context.Context, p shared.Principal, serviceID uint, ev service.Event, trigger coordinator.Trigger) (*coordinator.Outcome, error)
	Finish(ctx context.Context, out *coordinator.Outcome) []string
}
