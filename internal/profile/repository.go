package profile

import "context"

// --------------------------------------------------
// Repository Interface
// --------------------------------------------------

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetPublicByUsername(ctx context.Context, username string) (*Public, error)
	UpdateUsername(ctx context.Context, userID, username string) error
	UpdateAvatarURL(ctx context.Context, userID, avatarURL string) error
}
