package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type ServiceModel struct {
	ID                uint   `gorm:"primaryKey"`
	ClientID          uint   `gorm:"not null;index"`
	ApplianceID       uint   `gorm:"not null;index"`
	TechnicianID      *uint  `gorm:"index"`
	BusinessPartnerID *uint  `gorm:"index"`
	Status            string `gorm:"size:32;not null;index"`
	Description       string `gorm:"type:text;not null"`
	TechnicianNotes   string `gorm:"type:text"`
	Cost              *float64
	CompletedDate     *time.Time `gorm:"index"`
	IsCompletelyFixed bool       `gorm:"not null;default:false"`
	Version           int        `gorm:"not null;default:1"`
	CreatedAt         time.Time  `gorm:"index"`
	UpdatedAt         time.Time

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (ServiceModel) TableName() string {
	return constants.TableServices
}

type StatusHistoryModel struct {
	ID        uint              `gorm:"primaryKey"`
	ServiceID uint              `gorm:"not null;index"`
	OldStatus string            `gorm:"size:32;not null"`
	NewStatus string            `gorm:"size:32;not null"`
	Event     string            `gorm:"size:32;not null"`
	ActorID   uint              `gorm:"not null"`
	Note      string            `gorm:"type:text"`
	Details   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt time.Time         `gorm:"index"`
}

func (StatusHistoryModel) TableName() string {
	return constants.TableServiceStatusHistory
}
