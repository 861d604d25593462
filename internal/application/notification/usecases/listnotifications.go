package usecases

import (
	"context"
	"time"

	"github.com/frigoservis/servis/internal/domain/notification"
	"github.com/frigoservis/servis/internal/domain/shared"
	"github.com/frigoservis/servis/internal/shared/errors"
	"github.com/frigoservis/servis/internal/shared/logger"
	"github.com/frigoservis/servis/internal/shared/utils"
)

type NotificationDTO struct {
	ID               uint      `json:"id"`
	Type             string    `json:"type"`
	Title            string    `json:"title"`
	Message          string    `json:"message"`
	RelatedServiceID *uint     `json:"related_service_id,omitempty"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToNotificationDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:               n.ID(),
		Type:             n.Type().String(),
		Title:            n.Title(),
		Message:          n.Message(),
		RelatedServiceID: n.RelatedServiceID(),
		IsRead:           n.IsRead(),
		CreatedAt:        n.CreatedAt(),
	}
}

type ListNotificationsQuery struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}

type ListNotificationsResult struct {
	Notifications []*NotificationDTO
	Total         int64
	Unread        int64
	Page          int
	PageSize      int
}

type ListNotificationsUseCase struct {
	repo   notification.NotificationRepository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo notification.NotificationRepository, logger logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: logger}
}

// Execute lists the calling principal's own notifications, newest first.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, p shared.Principal, query ListNotificationsQuery) (*ListNotificationsResult, error) {
	pg := utils.ValidatePagination(query.Page, query.PageSize)
	offset := (pg.Page - 1) * pg.PageSize

	items, total, err := uc.repo.ListByRecipient(ctx, p.UserID, query.UnreadOnly, pg.PageSize, offset)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", p.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list notifications")
	}

	unread, err := uc.repo.CountUnread(ctx, p.UserID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", p.UserID, "error", err)
		return nil, errors.NewInternalError("failed to list notifications")
	}

	dtos := make([]*NotificationDTO, 0, len(items))
	for _, n := range items {
		dtos = append(dtos, ToNotificationDTO(n))
	}

	return &ListNotificationsResult{
		Notifications: dtos,
		Total:         total,
		Unread:        unread,
		Page:          pg.Page,
		PageSize:      pg.PageSize,
	}, nil
}
