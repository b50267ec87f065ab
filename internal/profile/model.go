package profile

import "time"

type Profile struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public is the profile shape exposed to other users.
type Public struct {
	Username    string  `json:"username"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	ReviewCount int     `json:"review_count"`
}
