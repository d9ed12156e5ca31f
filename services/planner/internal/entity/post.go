package entity

import "time"

// DateLayout is the wire and storage format of Post.Date.
const DateLayout = "2006-01-02"

type PostType string

const (
	PostTypePost PostType = "post"
	PostTypeReel PostType = "reel"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusReady     PostStatus = "ready"
	StatusPublished PostStatus = "published"
)

func (s PostStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusReady, StatusPublished:
		return true
	}
	return false
}

func (t PostType) Valid() bool {
	return t == PostTypePost || t == PostTypeReel
}

type Post struct {
	ID        int64      `json:"id"`
	Date      string     `json:"date"`
	Type      PostType   `json:"type"`
	Format    *string    `json:"format"`
	ShopID    *int64     `json:"shop_id"`
	Status    PostStatus `json:"status"`
	Caption   *string    `json:"caption"`
	Notes     *string    `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// PostSummary is a calendar row.
type PostSummary struct {
	Post
	ShopName   *string `json:"shop_name"`
	MediaCount int64   `json:"media_count"`
}

type PostDetail struct {
	Post
	ShopName *string `json:"shop_name"`
	Media    []Media `json:"media"`
}

type PostFilter struct {
	// Month and Year restrict to one calendar month; both must be set.
	Month  int
	Year   int
	Status PostStatus
}
