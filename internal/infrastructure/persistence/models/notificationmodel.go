package models

import (
	"time"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type NotificationModel struct {
	ID               uint      `gorm:"primaryKey"`
	RecipientID      uint      `gorm:"not null;index:idx_recipient_read"`
	Type             string    `gorm:"size:50;not null"`
	Title            string    `gorm:"size:255;not null"`
	Message          string    `gorm:"type:text;not null"`
	RelatedServiceID *uint     `gorm:"index"`
	IsRead           bool      `gorm:"not null;default:false;index:idx_recipient_read"`
	CreatedAt        time.Time `gorm:"index"`
}

func (NotificationModel) TableName() string {
	return constants.TableNotifications
}

// OutboundMessageModel is one queued SMS, WhatsApp or email. AttemptedAt is
// stamped once by the dispatcher claim and never cleared.
type OutboundMessageModel struct {
	ID               uint   `gorm:"primaryKey"`
	MessageID        string `gorm:"uniqueIndex;size:36;not null"`
	Channel          string `gorm:"size:16;not null"`
	Recipient        string `gorm:"size:255;not null"`
	Subject          string `gorm:"size:255"`
	Body             string `gorm:"type:text;not null"`
	RelatedServiceID *uint  `gorm:"index"`
	Status           string `gorm:"size:16;not null;default:'queued';index"`
	ErrorMessage     string `gorm:"type:text"`
	ProviderID       string `gorm:"size:100"`
	AttemptedAt      *time.Time
	CreatedAt        time.Time
}

func (OutboundMessageModel) TableName() string {
	return constants.TableOutboundMessages
}
