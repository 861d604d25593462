package models

import (
	"time"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type ClientModel struct {
	ID        uint   `gorm:"primaryKey"`
	FullName  string `gorm:"size:200;not null;index"`
	Phone     string `gorm:"size:50;not null;index"`
	Email     string `gorm:"size:255"`
	Address   string `gorm:"size:255"`
	City      string `gorm:"size:100"`
	CreatedAt time.Time
}

func (ClientModel) TableName() string {
	return constants.TableClients
}

type ApplianceModel struct {
	ID           uint   `gorm:"primaryKey"`
	ClientID     uint   `gorm:"not null;index"`
	DeviceType   string `gorm:"size:100;not null"`
	Manufacturer string `gorm:"size:100"`
	Model        string `gorm:"size:100"`
	SerialNumber string `gorm:"size:100"`
	CreatedAt    time.Time
}

func (ApplianceModel) TableName() string {
	return constants.TableAppliances
}
