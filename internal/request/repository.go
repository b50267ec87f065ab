package request

import "context"

// --------------------------------------------------
// Repository Interface
// --------------------------------------------------

type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	ListByUser(ctx context.Context, userID string) ([]Request, error)
	ListByStatus(ctx context.Context, status string) ([]Request, error)
	// Resolve flips a pending request to its terminal state.
	Resolve(ctx context.Context, id, status, adminNotes string, restaurantID *string) error
}
