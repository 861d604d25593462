package usecases

import (
	"context"
	"fmt"

	"github.com/frigoservis/servis/internal/domain/notification"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
)

type MarkNotificationReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkNotificationReadUseCase(repo notification.NotificationRepository, logger logger.Interface) *MarkNotificationReadUseCase {
	return &MarkNotificationReadUseCase{repo: repo, logger: logger}
}

func (uc *MarkNotificationReadUseCase) Execute(ctx context.Context, p shared.Principal, notificationID uint) error {
	n, err := uc.repo.GetByID(ctx, notificationID)
	if err != nil {
		uc.logger.Errorw("failed to load notification", "notification_id", notificationID, "error", err)
		return errors.NewInternalError("failed to load notification")
	}
	// Another user's notification is reported as missing.
	if n == nil || !n.BelongsTo(p.UserID) {
		return errors.NewNotFoundError(fmt.Sprintf("notification %d not found", notificationID))
	}

	if !n.MarkAsRead() {
		return nil
	}
	if err := uc.repo.MarkAsRead(ctx, notificationID); err != nil {
		uc.logger.Errorw("failed to mark notification read", "notification_id", notificationID, "error", err)
		return errors.NewInternalError("failed to update notification")
	}
	return nil
}

type MarkAllNotificationsReadUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewMarkAllNotificationsReadUseCase(repo notification.NotificationRepository, logger logger.Interface) *MarkAllNotificationsReadUseCase {
	return &MarkAllNotificationsReadUseCase{repo: repo, logger: logger}
}

// Execute returns the number of notifications that changed.
func (uc *MarkAllNotificationsReadUseCase) Execute(ctx context.Context, p shared.Principal) (int64, error) {
	updated, err := uc.repo.MarkAllAsRead(ctx, p.UserID)
	if err != nil {
		uc.logger.Errorw("failed to mark all notifications read", "user_id", p.UserID, "error", err)
		return 0, errors.NewInternalError("failed to update notifications")
	}
	uc.logger.Infow("notifications marked read", "user_id", p.UserID, "count", updated)
	return updated, nil
}
