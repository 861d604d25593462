package models

import (
	"time"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type RemovedPartModel struct {
	ID                 uint      `gorm:"primaryKey"`
	ServiceID          uint      `gorm:"not null;index"`
	PartName           string    `gorm:"size:255;not null"`
	RemovalDate        time.Time `gorm:"not null"`
	RemovalReason      string    `gorm:"type:text;not null"`
	CurrentLocation    string    `gorm:"size:32;not null;default:'workshop'"`
	ExpectedReturnDate *time.Time
	ActualReturnDate   *time.Time `gorm:"index"`
	PartStatus         string     `gorm:"size:32;not null;default:'removed'"`
	TechnicianNotes    string     `gorm:"type:text"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (RemovedPartModel) TableName() string {
	return constants.TableRemovedParts
}
