package favorite

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrDefaultListImmutable = errors.New("the Favorites list cannot be renamed or deleted")
	ErrEmptyListName        = errors.New("list name cannot be empty")
)

// --------------------------------------------------
// Service
// --------------------------------------------------

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Toggle adds the restaurant to the list if absent and removes it if present.
// Returns true when the restaurant is favorited after the call.
func (s *Service) Toggle(ctx context.Context, userID, restaurantID, listName string) (bool, error) {
	listName = normalizeList(listName)

	exists, err := s.repo.Exists(ctx, userID, restaurantID, listName)
	if err != nil {
		return false, err
	}
	if exists {
		if err := s.repo.Remove(ctx, userID, restaurantID, listName); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.repo.Add(ctx, &Favorite{
		UserID:       userID,
		RestaurantID: restaurantID,
		ListName:     listName,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) Move(ctx context.Context, userID, restaurantID, fromList, toList string) error {
	fromList = normalizeList(fromList)
	toList = strings.TrimSpace(toList)
	if toList == "" {
		return ErrEmptyListName
	}
	return s.repo.Move(ctx, userID, restaurantID, fromList, toList)
}

// Lists returns the user's list names. The default list is always present
// even before anything has been saved to it.
func (s *Service) Lists(ctx context.Context, userID string) ([]string, error) {
	names, err := s.repo.ListNames(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, n := range names {
		if n == DefaultList {
			return names, nil
		}
	}
	return append([]string{DefaultList}, names...), nil
}

func (s *Service) ListEntries(ctx context.Context, userID, listName string) ([]Entry, error) {
	return s.repo.ListEntries(ctx, userID, normalizeList(listName))
}

func (s *Service) RenameList(ctx context.Context, userID, from, to string) error {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == DefaultList {
		return ErrDefaultListImmutable
	}
	if from == "" || to == "" {
		return ErrEmptyListName
	}
	return s.repo.RenameList(ctx, userID, from, to)
}

func (s *Service) DeleteList(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == DefaultList {
		return ErrDefaultListImmutable
	}
	if name == "" {
		return ErrEmptyListName
	}
	return s.repo.DeleteList(ctx, userID, name)
}

func normalizeList(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultList
	}
	return name
}
