package entity

import "time"

type Shop struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactName  *string   `json:"contact_name"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}
