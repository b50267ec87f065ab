package review

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"
	"testing"
	"time"

	"halalbites/internal/httperr"
	"halalbites/internal/moderation"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	reviews map[string]*Review
	images  map[string][]string
	nextID  int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		reviews: make(map[string]*Review),
		images:  make(map[string][]string),
		nextID:  1,
	}
}

func (m *MockRepository) Create(ctx context.Context, rev *Review) error {
	for _, existing := range m.reviews {
		if existing.UserID == rev.UserID && existing.RestaurantID == rev.RestaurantID {
			return httperr.ErrConflict
		}
	}
	rev.ID = strconv.Itoa(m.nextID)
	m.nextID++
	rev.CreatedAt = time.Now()
	rev.UpdatedAt = rev.CreatedAt
	m.reviews[rev.ID] = rev
	return nil
}

func (m *MockRepository) Update(ctx context.Context, rev *Review) error {
	if _, ok := m.reviews[rev.ID]; !ok {
		return httperr.ErrNotFound
	}
	m.reviews[rev.ID] = rev
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return httperr.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	rev, ok := m.reviews[id]
	if !ok {
		return nil, httperr.ErrNotFound
	}
	return rev, nil
}

func (m *MockRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]*Review, error) {
	var out []*Review
	for _, rev := range m.reviews {
		if rev.RestaurantID == restaurantID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (m *MockRepository) AddImage(ctx context.Context, reviewID, url string) error {
	m.images[reviewID] = append(m.images[reviewID], url)
	return nil
}

// flags comments containing "hateful"
type mockModerator struct{}

func (mockModerator) Check(ctx context.Context, req moderation.Request) moderation.Result {
	if strings.Contains(req.ReviewText, "hateful") {
		return moderation.Result{Safe: false, Reason: "contains hate speech"}
	}
	return moderation.Result{Safe: true}
}

type noopUploader struct{}

func (noopUploader) Upload(ctx context.Context, key string, file multipart.File) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (noopUploader) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func newTestService(repo Repository) *Service {
	return NewService(repo, noopUploader{}, mockModerator{}, 10)
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestCreate_Success(t *testing.T) {
	service := newTestService(NewMockRepository())

	rev := &Review{RestaurantID: "r1", UserID: "u1", Rating: 4, Comment: "great biryani"}
	if err := service.Create(context.Background(), rev); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.ID == "" {
		t.Error("expected ID to be set")
	}
}

func TestCreate_RatingBounds(t *testing.T) {
	service := newTestService(NewMockRepository())

	for _, rating := range []int{0, 6, -1} {
		err := service.Create(context.Background(), &Review{
			RestaurantID: "r1", UserID: "u1", Rating: rating,
		})
		if err == nil {
			t.Errorf("expected error for rating %d", rating)
		}
	}
}

func TestCreate_OnePerUserPerRestaurant(t *testing.T) {
	service := newTestService(NewMockRepository())

	first := &Review{RestaurantID: "r1", UserID: "u1", Rating: 5}
	if err := service.Create(context.Background(), first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second := &Review{RestaurantID: "r1", UserID: "u1", Rating: 3}
	if err := service.Create(context.Background(), second); !errors.Is(err, httperr.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	// same user, different restaurant is fine
	third := &Review{RestaurantID: "r2", UserID: "u1", Rating: 3}
	if err := service.Create(context.Background(), third); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreate_UnsafeCommentRejected(t *testing.T) {
	service := newTestService(NewMockRepository())

	err := service.Create(context.Background(), &Review{
		RestaurantID: "r1", UserID: "u1", Rating: 1, Comment: "hateful rant",
	})
	if !errors.Is(err, ErrUnsafeContent) {
		t.Fatalf("expected ErrUnsafeContent, got %v", err)
	}
	if !strings.Contains(err.Error(), "contains hate speech") {
		t.Errorf("expected the moderation reason in the error, got %q", err.Error())
	}
}

func TestUpdate_OnlyAuthor(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo)

	rev := &Review{RestaurantID: "r1", UserID: "u1", Rating: 4}
	service.Create(context.Background(), rev)

	if _, err := service.Update(context.Background(), rev.ID, "someone-else", 2, "meh"); !errors.Is(err, httperr.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	updated, err := service.Update(context.Background(), rev.ID, "u1", 2, "meh")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Rating != 2 || updated.Comment != "meh" {
		t.Errorf("update not applied: %+v", updated)
	}
}

func TestDelete_AuthorAndModerators(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo)

	cases := []struct {
		userID string
		role   string
		wantOK bool
	}{
		{"stranger", "user", false},
		{"u1", "user", true},
		{"stranger", "moderator", true},
		{"stranger", "admin", true},
	}

	for _, tc := range cases {
		rev := &Review{RestaurantID: "r-" + tc.userID + tc.role, UserID: "u1", Rating: 4}
		if err := service.Create(context.Background(), rev); err != nil {
			t.Fatalf("setup failed: %v", err)
		}

		err := service.Delete(context.Background(), rev.ID, tc.userID, tc.role)
		if tc.wantOK && err != nil {
			t.Errorf("%s/%s: unexpected error: %v", tc.userID, tc.role, err)
		}
		if !tc.wantOK && !errors.Is(err, httperr.ErrForbidden) {
			t.Errorf("%s/%s: expected ErrForbidden, got %v", tc.userID, tc.role, err)
		}
	}
}
