package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/application/coordinator"
	"github.com/frigoservis/servis/internal/domain/service"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
)

// StatusCoordinator runs a standalone service event in its own transaction.
type StatusCoordinator interface {
	Run(ctx context.Context, p shared.Principal, serviceID uint, ev service.Event, trigger coordinator.Trigger) (*coordinator.Outcome, []string, error)
}

// SheetWriter renders one header row plus data rows into a workbook.
type SheetWriter interface {
	Write(sheet string, headers []string, rows [][]any) ([]byte, error)
}

// loadVisible returns the service or a not found error when p may not see it.
func loadVisible(ctx context.Context, repo service.ServiceRepository, p shared.Principal, serviceID uint) (*service.Service, error) {
	svc, err := repo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load service")
	}
	if svc == nil || !svc.VisibleTo(p) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("service %d not found", serviceID))
	}
	return svc, nil
}
