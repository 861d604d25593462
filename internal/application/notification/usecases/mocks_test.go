package usecases

import (
	"context"

	"github.com/frigoservis/servis/internal/domain/notification"
)

type mockNotificationRepository struct {
	BulkCreateFunc      func(ctx context.Context, items []*notification.Notification) error
	GetByIDFunc         func(ctx context.Context, id uint) (*notification.Notification, error)
	ListByRecipientFunc func(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error)
	CountUnreadFunc     func(ctx context.Context, recipientID uint) (int64, error)
	MarkAsReadFunc      func(ctx context.Context, id uint) error
	MarkAllAsReadFunc   func(ctx context.Context, recipientID uint) (int64, error)
}

func (m *mockNotificationRepository) BulkCreate(ctx context.Context, items []*notification.Notification) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id uint) (*notification.Notification, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockNotificationRepository) ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*notification.Notification, int64, error) {
	if m.ListByRecipientFunc != nil {
		return m.ListByRecipientFunc(ctx, recipientID, unreadOnly, limit, offset)
	}
	return nil, 0, nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, recipientID)
	}
	return 0, nil
}

func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, id uint) error {
	if m.MarkAsReadFunc != nil {
		return m.MarkAsReadFunc(ctx, id)
	}
	return nil
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error) {
	if m.MarkAllAsReadFunc != nil {
		return m.MarkAllAsReadFunc(ctx, recipientID)
	}
	return 0, nil
}
