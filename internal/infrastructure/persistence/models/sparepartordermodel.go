package models

import (
	"time"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type SparePartOrderModel struct {
	ID                uint   `gorm:"primaryKey"`
	ServiceID         *uint  `gorm:"index"`
	PartName          string `gorm:"size:255;not null"`
	PartNumber        string `gorm:"size:100"`
	Quantity          int    `gorm:"not null;default:1"`
	Urgency           string `gorm:"size:16;not null;default:'normal';index"`
	WarrantyStatus    string `gorm:"size:32;not null"`
	Status            string `gorm:"size:16;not null;default:'pending';index"`
	Description       string `gorm:"type:text"`
	Notes             string `gorm:"type:text"`
	SupplierName      string `gorm:"size:200"`
	EstimatedCost     *float64
	EstimatedDelivery *time.Time
	RequestedBy       uint      `gorm:"not null;index"`
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

func (SparePartOrderModel) TableName() string {
	return constants.TableSparePartOrders
}
