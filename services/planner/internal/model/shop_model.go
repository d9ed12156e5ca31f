package model

import "time"

type ShopModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"type:varchar(255);not null"`
	ContactName  *string   `gorm:"type:varchar(255)"`
	ContactEmail *string   `gorm:"type:varchar(255)"`
	ContactPhone *string   `gorm:"type:varchar(50)"`
	Active       bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (ShopModel) TableName() string {
	return "shops"
}
