package favorite

import "context"

// --------------------------------------------------
// Repository Interface
// --------------------------------------------------

type Repository interface {
	Exists(ctx context.Context, userID, restaurantID, listName string) (bool, error)
	Add(ctx context.Context, f *Favorite) error
	Remove(ctx context.Context, userID, restaurantID, listName string) error
	Move(ctx context.Context, userID, restaurantID, fromList, toList string) error
	ListNames(ctx context.Context, userID string) ([]string, error)
	ListEntries(ctx context.Context, userID, listName string) ([]Entry, error)
	RenameList(ctx context.Context, userID, from, to string) error
	DeleteList(ctx context.Context, userID, name string) error
}
