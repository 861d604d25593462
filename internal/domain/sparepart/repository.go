package sparepart

import (
	"context"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/sparepart/valueobjects"
)

type SparePartOrderRepository interface {
	Create(ctx context.Context, order *SparePartOrder) error
	Update(ctx context.Context, order *SparePartOrder) error
	GetByID(ctx context.Context, id uint) (*SparePartOrder, error)
	List(ctx context.Context, filter OrderFilter) ([]*SparePartOrder, int64, error)
	ListByServiceID(ctx context.Context, serviceID uint) ([]*SparePartOrder, error)
	// CountOpenByServiceID counts the service's pending and ordered orders.
	CountOpenByServiceID(ctx context.Context, serviceID uint) (int, error)
}

type OrderFilter struct {
	Status      *vo.OrderStatus
	Urgency     *vo.Urgency
	ServiceID   *uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}
