package model

import "time"

type PostModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Date      time.Time `gorm:"type:date;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	Format    *string   `gorm:"type:varchar(100)"`
	ShopID    *int64    `gorm:"index"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	Caption   *string   `gorm:"type:text"`
	Notes     *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

func (PostModel) TableName() string {
	return "posts"
}

// PostRow is a post joined with its shop name and media count.
type PostRow struct {
	PostModel
	ShopName   *string
	MediaCount int64
}
