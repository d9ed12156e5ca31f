package model

import "time"

type TemplateModel struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	Name            string    `gorm:"type:varchar(255);not null"`
	CaptionTemplate *string   `gorm:"type:text"`
	MediaGuide      *string   `gorm:"type:text"`
	Active          bool      `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (TemplateModel) TableName() string {
	return "templates"
}
