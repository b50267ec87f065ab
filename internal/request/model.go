package request

import (
	"encoding/json"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission is the user-provided restaurant suggestion, stored verbatim as
// JSONB until an admin reviews it.
type Submission struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	CuisineType  string          `json:"cuisine_type"`
	HalalStatus  string          `json:"halal_status"`
	PriceRange   string          `json:"price_range"`
	OpeningHours json.RawMessage `json:"opening_hours,omitempty"`
	Description  string          `json:"description,omitempty"`
	Phone        string          `json:"phone,omitempty"`
	Website      string          `json:"website,omitempty"`
	ImageURLs    []string        `json:"image_urls,omitempty"`
}

type Request struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Submission   Submission `json:"submission"`
	Status       string     `json:"status"`
	AdminNotes   *string    `json:"admin_notes,omitempty"`
	RestaurantID *string    `json:"restaurant_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
