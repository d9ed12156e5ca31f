package entity

import "time"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

type Media struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post_id"`
	FilePath  string    `json:"file_path"`
	FileName  string    `json:"file_name"`
	MediaType MediaType `json:"media_type"`
	FileSize  int64     `json:"file_size"`
	MimeType  string    `json:"mime_type"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
