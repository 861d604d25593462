package handlers

import (
	"context"

	"github.com/frigoservis/servis/internal/application/notification/usecases"
	"github.com/frigoservis/servis/internal/domain/shared"
)

// Use case interfaces for NotificationHandler - enables unit testing with mocks.

type listNotificationsUseCase interface {
	Execute(ctx context.Context, p shared.Principal, query usecases.ListNotificationsQuery) (*usecases.ListNotificationsResult, error)
}

type markNotificationReadUseCase interface {
	Execute(ctx context.Context, p shared.Principal, notificationID uint) error
}

type markAllNotificationsReadUseCase interface {
	Execute(ctx context.Context, p shared.Principal) (int64, error)
}
