package notification

import (
	"fmt"
	"time"

	vo "github.com/frigoservis/servis/internal/domain/notification/valueobjects"
)

// Notification is a dashboard notice for one recipient. Only the read flag
// changes after creation.
type Notification struct {
	id               uint
	recipientID      uint
	notificationType vo.NotificationType
	title            string
	message          string
	relatedServiceID *uint
	isRead           bool
	createdAt        time.Time
}

func NewNotification(
	recipientID uint,
	notificationType vo.NotificationType,
	title string,
	message string,
	relatedServiceID *uint,
) (*Notification, error) {
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 255 {
		return nil, fmt.Errorf("title exceeds maximum length of 255 characters")
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("message is required")
	}

	return &Notification{
		recipientID:      recipientID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		relatedServiceID: relatedServiceID,
		createdAt:        time.Now().UTC(),
	}, nil
}

func ReconstructNotification(
	id, recipientID uint,
	notificationType vo.NotificationType,
	title, message string,
	relatedServiceID *uint,
	isRead bool,
	createdAt time.Time,
) (*Notification, error) {
	if id == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !notificationType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notificationType)
	}
	return &Notification{
		id:               id,
		recipientID:      recipientID,
		notificationType: notificationType,
		title:            title,
		message:          message,
		relatedServiceID: relatedServiceID,
		isRead:           isRead,
		createdAt:        createdAt,
	}, nil
}

func (n *Notification) ID() uint                        { return n.id }
func (n *Notification) RecipientID() uint               { return n.recipientID }
func (n *Notification) Type() vo.NotificationType       { return n.notificationType }
func (n *Notification) Title() string                   { return n.title }
func (n *Notification) Message() string                 { return n.message }
func (n *Notification) RelatedServiceID() *uint         { return n.relatedServiceID }
func (n *Notification) IsRead() bool                    { return n.isRead }
func (n *Notification) CreatedAt() time.Time            { return n.createdAt }
func (n *Notification) BelongsTo(recipientID uint) bool { return n.recipientID == recipientID }

func (n *Notification) SetID(id uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = id
	return nil
}

// MarkAsRead reports whether the flag changed.
func (n *Notification) MarkAsRead() bool {
	if n.isRead {
		return false
	}
	n.isRead = true
	return true
}
