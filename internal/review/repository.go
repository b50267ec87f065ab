package review

import "context"

type Repository interface {
	Create(ctx context.Context, r *Review) error
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*Review, error)
	AddImage(ctx context.Context, reviewID, url string) error
}
