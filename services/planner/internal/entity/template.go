package entity

import "time"

// Template is a reusable caption and media brief. Placeholders in
// CaptionTemplate are filled in by the client.
type Template struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	CaptionTemplate *string   `json:"caption_template"`
	MediaGuide      *string   `json:"media_guide"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
}
