package removedpart

import "context"

type RemovedPartRepository interface {
	Create(ctx context.Context, part *RemovedPart) error
	Update(ctx context.Context, part *RemovedPart) error
	GetByID(ctx context.Context, id uint) (*RemovedPart, error)
	ListByServiceID(ctx context.Context, serviceID uint) ([]*RemovedPart, error)
	// CountOutByServiceID counts the service's parts with no actual return date.
	CountOutByServiceID(ctx context.Context, serviceID uint) (int, error)
}
