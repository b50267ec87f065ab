package review

import "time"

type Review struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	UserID       string    `json:"user_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// author profile, joined for display
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	Images []string `json:"images,omitempty"`
}
