package request

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"halalbites/internal/httperr"
	"halalbites/internal/restaurant"
)

// --------------------------------------------------
// Mocks
// --------------------------------------------------

type MockRepository struct {
	requests map[string]*Request
	nextID   int
}

func newMockRepository() *MockRepository {
	return &MockRepository{requests: map[string]*Request{}}
}

func (m *MockRepository) Create(_ context.Context, req *Request) error {
	m.nextID++
	req.ID = fmt.Sprintf("req-%d", m.nextID)
	req.Status = StatusPending
	req.CreatedAt = time.Now()
	req.UpdatedAt = req.CreatedAt
	stored := *req
	m.requests[req.ID] = &stored
	return nil
}

func (m *MockRepository) GetByID(_ context.Context, id string) (*Request, error) {
	req, ok := m.requests[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (m *MockRepository) ListByUser(_ context.Context, userID string) ([]Request, error) {
	out := []Request{}
	for _, req := range m.requests {
		if req.UserID == userID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockRepository) ListByStatus(_ context.Context, status string) ([]Request, error) {
	out := []Request{}
	for _, req := range m.requests {
		if req.Status == status {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (m *MockRepository) Resolve(_ context.Context, id, status, adminNotes string, restaurantID *string) error {
	req, ok := m.requests[id]
	if !ok || req.Status != StatusPending {
		return httperr.ErrNotFound
	}
	req.Status = status
	if adminNotes != "" {
		req.AdminNotes = &adminNotes
	}
	req.RestaurantID = restaurantID
	return nil
}

type mockRestaurants struct {
	created   []*restaurant.Restaurant
	images    []string
	createErr error
	imageErr  error
}

func (m *mockRestaurants) Create(_ context.Context, res *restaurant.Restaurant) (*restaurant.Restaurant, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	res.ID = fmt.Sprintf("rest-%d", len(m.created)+1)
	m.created = append(m.created, res)
	return res, nil
}

func (m *mockRestaurants) AddImageByURL(_ context.Context, restaurantID, _ string, url string) (*restaurant.Image, error) {
	if m.imageErr != nil {
		return nil, m.imageErr
	}
	m.images = append(m.images, url)
	return &restaurant.Image{RestaurantID: restaurantID, URL: url}, nil
}

func submitPending(t *testing.T, service *Service) *Request {
	t.Helper()
	req, err := service.Create(context.Background(), "user-1", Submission{
		Name:        "Kebab Corner",
		Address:     "12 High Street, Leeds",
		CuisineType: "Turkish",
		HalalStatus: "Full",
		PriceRange:  "$$",
		ImageURLs:   []string{"https://img.example.com/a.jpg", "https://img.example.com/b.jpg"},
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	return req
}

// --------------------------------------------------
// Tests
// --------------------------------------------------

func TestCreate_RequiresNameAndAddress(t *testing.T) {
	service := NewService(newMockRepository(), &mockRestaurants{})

	_, err := service.Create(context.Background(), "user-1", Submission{Name: "   ", Address: ""})
	if !errors.Is(err, ErrMissingFields) {
		t.Errorf("expected ErrMissingFields, got %v", err)
	}
}

func TestCreate_StartsPending(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockRestaurants{})

	req := submitPending(t, service)
	if req.Status != StatusPending {
		t.Errorf("expected new request pending, got %q", req.Status)
	}

	mine, _ := service.ListMine(context.Background(), "user-1")
	if len(mine) != 1 {
		t.Errorf("expected one request for user-1, got %d", len(mine))
	}
}

func TestApprove_CreatesRestaurantWithImages(t *testing.T) {
	repo := newMockRepository()
	restaurants := &mockRestaurants{}
	service := NewService(repo, restaurants)

	pending := submitPending(t, service)

	approved, err := service.Approve(context.Background(), pending.ID, "looks legit")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("expected approved status, got %q", approved.Status)
	}
	if approved.RestaurantID == nil || *approved.RestaurantID != "rest-1" {
		t.Errorf("expected request linked to created restaurant, got %v", approved.RestaurantID)
	}
	if len(restaurants.created) != 1 || restaurants.created[0].Name != "Kebab Corner" {
		t.Fatalf("expected one restaurant created from the submission, got %+v", restaurants.created)
	}
	if len(restaurants.images) != 2 {
		t.Errorf("expected both submitted images attached, got %v", restaurants.images)
	}
	if approved.AdminNotes == nil || *approved.AdminNotes != "looks legit" {
		t.Errorf("expected admin notes recorded, got %v", approved.AdminNotes)
	}
}

func TestApprove_ImageFailureDoesNotBlock(t *testing.T) {
	repo := newMockRepository()
	restaurants := &mockRestaurants{imageErr: errors.New("cdn down")}
	service := NewService(repo, restaurants)

	pending := submitPending(t, service)

	approved, err := service.Approve(context.Background(), pending.ID, "")
	if err != nil {
		t.Fatalf("approve should survive image failures: %v", err)
	}
	if approved.Status != StatusApproved {
		t.Errorf("expected approved status, got %q", approved.Status)
	}
}

func TestApprove_CreateFailureKeepsPending(t *testing.T) {
	repo := newMockRepository()
	restaurants := &mockRestaurants{createErr: errors.New("db down")}
	service := NewService(repo, restaurants)

	pending := submitPending(t, service)

	if _, err := service.Approve(context.Background(), pending.ID, ""); err == nil {
		t.Fatal("expected approve to fail when the restaurant cannot be created")
	}
	stored, _ := repo.GetByID(context.Background(), pending.ID)
	if stored.Status != StatusPending {
		t.Errorf("expected request to stay pending after a failed approval, got %q", stored.Status)
	}
}

func TestApprove_AlreadyResolved(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo, &mockRestaurants{})

	pending := submitPending(t, service)
	if _, err := service.Approve(context.Background(), pending.ID, ""); err != nil {
		t.Fatalf("first approve failed: %v", err)
	}

	if _, err := service.Approve(context.Background(), pending.ID, ""); !errors.Is(err, httperr.ErrConflict) {
		t.Errorf("expected ErrConflict on double approval, got %v", err)
	}
}

func TestReject_RecordsNotes(t *testing.T) {
	repo := newMockRepository()
	restaurants := &mockRestaurants{}
	service := NewService(repo, restaurants)

	pending := submitPending(t, service)

	if err := service.Reject(context.Background(), pending.ID, "duplicate listing"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	stored, _ := repo.GetByID(context.Background(), pending.ID)
	if stored.Status != StatusRejected {
		t.Errorf("expected rejected status, got %q", stored.Status)
	}
	if stored.AdminNotes == nil || *stored.AdminNotes != "duplicate listing" {
		t.Errorf("expected rejection notes, got %v", stored.AdminNotes)
	}
	if len(restaurants.created) != 0 {
		t.Error("rejection must not create a restaurant")
	}
}

func TestListByStatus_UnknownStatus(t *testing.T) {
	service := NewService(newMockRepository(), &mockRestaurants{})

	if _, err := service.ListByStatus(context.Background(), "bogus"); err == nil {
		t.Error("expected error for unknown status")
	}
}
