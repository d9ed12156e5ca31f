package model

import "time"

type MediaModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	PostID    int64     `gorm:"not null;index:idx_media_post_sort,priority:1"`
	FilePath  string    `gorm:"type:varchar(500);not null"`
	FileName  string    `gorm:"type:varchar(255);not null"`
	MediaType string    `gorm:"type:varchar(10);not null"`
	FileSize  int64     `gorm:"not null"`
	MimeType  string    `gorm:"type:varchar(100);not null"`
	SortOrder int       `gorm:"not null;index:idx_media_post_sort,priority:2"`
	CreatedAt time.Time `gorm:"not null"`
}

func (MediaModel) TableName() string {
	return "media"
}
