package restaurant

import "context"

type Repository interface {
	Create(ctx context.Context, r *Restaurant) error
	Update(ctx context.Context, r *Restaurant) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Restaurant, error)
	Search(ctx context.Context, f Filter) ([]*Restaurant, error)

	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, restaurantID string) ([]Image, error)
	// SetPrimaryImage clears any previous primary for the restaurant.
	SetPrimaryImage(ctx context.Context, restaurantID, imageID string) error

	RatingSummary(ctx context.Context, restaurantID string) (float64, int, error)
}
