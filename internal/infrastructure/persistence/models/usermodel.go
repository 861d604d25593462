package models

import (
	"time"

	"github.com/frigoservis/servis/internal/shared/constants"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:50;not null"`
	FullName     string `gorm:"size:200;not null"`
	Role         string `gorm:"size:32;not null;index"`
	Phone        string `gorm:"size:50"`
	Email        string `gorm:"size:255"`
	PasswordHash string `gorm:"size:255;not null"`
	ClientID     *uint  `gorm:"index"`
	Active       bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return constants.TableUsers
}
