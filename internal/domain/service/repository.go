package service

import (
	"context"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/service/valueobjects"
)

type ServiceRepository interface {
	Create(ctx context.Context, svc *Service) error
	// Update persists svc guarded by its version and returns ErrVersionConflict
	// when another writer updated the row first.
	Update(ctx context.Context, svc *Service) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]*Service, int64, error)
	CountByStatus(ctx context.Context, status vo.ServiceStatus) (int64, error)
}

// ServiceFilter narrows List. Nil pointers are ignored.
type ServiceFilter struct {
	Status            *vo.ServiceStatus
	TechnicianID      *uint
	BusinessPartnerID *uint
	ClientID          *uint
	CreatedFrom       *time.Time
	CreatedTo         *time.Time
	CompletedFrom     *time.Time
	CompletedTo       *time.Time
	Page              int
	PageSize          int
}

type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *StatusHistory) error
	ListByServiceID(ctx context.Context, serviceID uint) ([]*StatusHistory, error)
}
