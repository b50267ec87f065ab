package request

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"halalbites/internal/httperr"
	"halalbites/internal/restaurant"
)

var ErrMissingFields = errors.New("name and address are required")

// RestaurantCreator is the slice of the restaurant service approval needs.
type RestaurantCreator interface {
	Create(ctx context.Context, res *restaurant.Restaurant) (*restaurant.Restaurant, error)
	AddImageByURL(ctx context.Context, restaurantID, userID, url string) (*restaurant.Image, error)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

type Service struct {
	repo        Repository
	restaurants RestaurantCreator
}

func NewService(repo Repository, restaurants RestaurantCreator) *Service {
	return &Service{repo: repo, restaurants: restaurants}
}

func (s *Service) Create(ctx context.Context, userID string, sub Submission) (*Request, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Address = strings.TrimSpace(sub.Address)
	if sub.Name == "" || sub.Address == "" {
		return nil, ErrMissingFields
	}

	req := &Request{UserID: userID, Submission: sub}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Request, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]Request, error) {
	if status == "" {
		status = StatusPending
	}
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.repo.ListByStatus(ctx, status)
}

// Approve turns the submission into a live restaurant. Geocoding and
// image attachment are best effort: the approval itself only fails when
// the restaurant cannot be created.
func (s *Service) Approve(ctx context.Context, id, adminNotes string) (*Request, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != StatusPending {
		return nil, httperr.ErrConflict
	}

	sub := req.Submission
	created, err := s.restaurants.Create(ctx, &restaurant.Restaurant{
		Name:         sub.Name,
		Address:      sub.Address,
		CuisineType:  sub.CuisineType,
		HalalStatus:  sub.HalalStatus,
		PriceRange:   sub.PriceRange,
		OpeningHours: sub.OpeningHours,
		Description:  sub.Description,
		Phone:        sub.Phone,
		Website:      sub.Website,
	})
	if err != nil {
		return nil, fmt.Errorf("create restaurant from request: %w", err)
	}

	for _, url := range sub.ImageURLs {
		if _, err := s.restaurants.AddImageByURL(ctx, created.ID, req.UserID, url); err != nil {
			log.Printf("request %s: attach image %s failed: %v", req.ID, url, err)
		}
	}

	if err := s.repo.Resolve(ctx, id, StatusApproved, adminNotes, &created.ID); err != nil {
		return nil, err
	}
	req.Status = StatusApproved
	req.RestaurantID = &created.ID
	if adminNotes != "" {
		req.AdminNotes = &adminNotes
	}
	return req, nil
}

func (s *Service) Reject(ctx context.Context, id, adminNotes string) error {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if req.Status != StatusPending {
		return httperr.ErrConflict
	}
	return s.repo.Resolve(ctx, id, StatusRejected, adminNotes, nil)
}
