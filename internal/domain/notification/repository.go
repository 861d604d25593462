package notification

import (
	"context"
	"time"
)

type NotificationRepository interface {
	BulkCreate(ctx context.Context, notifications []*Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	ListByRecipient(ctx context.Context, recipientID uint, unreadOnly bool, limit, offset int) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, recipientID uint) (int64, error)
}

type OutboundMessageRepository interface {
	BulkCreate(ctx context.Context, messages []*OutboundMessage) error
	// ClaimForDelivery stamps attempted_at on a message that was never attempted
	// and reports whether this caller won the claim.
	ClaimForDelivery(ctx context.Context, id uint, at time.Time) (bool, error)
	UpdateResult(ctx context.Context, message *OutboundMessage) error
	ListByServiceID(ctx context.Context, serviceID uint) ([]*OutboundMessage, error)
}
