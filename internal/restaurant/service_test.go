package restaurant

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"halalbites/internal/hours"
	"halalbites/internal/moderation"
)

// --------------------------------------------------
// Mock Repository
// --------------------------------------------------

type MockRepository struct {
	restaurants map[string]*Restaurant
	images      map[string][]Image
	nextID      int
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		restaurants: make(map[string]*Restaurant),
		images:      make(map[string][]Image),
		nextID:      1,
	}
}

func (m *MockRepository) Create(ctx context.Context, res *Restaurant) error {
	res.ID = strconv.Itoa(m.nextID)
	m.nextID++
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	m.restaurants[res.ID] = res
	return nil
}

func (m *MockRepository) Update(ctx context.Context, res *Restaurant) error {
	m.restaurants[res.ID] = res
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	delete(m.restaurants, id)
	return nil
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Restaurant, error) {
	res, ok := m.restaurants[id]
	if !ok {
		return nil, context.Canceled // any error will do for the mock
	}
	return res, nil
}

func (m *MockRepository) Search(ctx context.Context, f Filter) ([]*Restaurant, error) {
	var out []*Restaurant
	for _, res := range m.restaurants {
		out = append(out, res)
	}
	return out, nil
}

func (m *MockRepository) AddImage(ctx context.Context, img *Image) error {
	img.ID = strconv.Itoa(m.nextID)
	m.nextID++
	m.images[img.RestaurantID] = append(m.images[img.RestaurantID], *img)
	return nil
}

func (m *MockRepository) ListImages(ctx context.Context, restaurantID string) ([]Image, error) {
	return m.images[restaurantID], nil
}

func (m *MockRepository) SetPrimaryImage(ctx context.Context, restaurantID, imageID string) error {
	return nil
}

func (m *MockRepository) RatingSummary(ctx context.Context, restaurantID string) (float64, int, error) {
	return 0, 0, nil
}

// --------------------------------------------------
// Mock collaborators
// --------------------------------------------------

type mockUploader struct {
	failKeys map[string]bool
}

func (u *mockUploader) Upload(ctx context.Context, key string, file multipart.File) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (u *mockUploader) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	return "https://cdn.test/" + key, nil
}

// flags any image whose decoded bytes contain "unsafe"
type mockModerator struct{}

func (m *mockModerator) Check(ctx context.Context, req moderation.Request) moderation.Result {
	decoded, _ := base64.StdEncoding.DecodeString(req.ImageBase64)
	if strings.Contains(string(decoded), "unsafe") {
		return moderation.Result{Safe: false, Reason: "flagged content"}
	}
	return moderation.Result{Safe: true}
}

type mockGeocoder struct {
	lat, lng float64
	found    bool
}

func (g *mockGeocoder) Search(ctx context.Context, address string) (float64, float64, bool, error) {
	return g.lat, g.lng, g.found, nil
}

func newTestService(repo Repository, geo Geocoder, maxImages int) *Service {
	return NewService(repo, &mockUploader{}, &mockModerator{}, geo, maxImages)
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestCreate_GeocodesMissingCoordinates(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo, &mockGeocoder{lat: 40.7128, lng: -74.006, found: true}, 10)

	res, err := service.Create(context.Background(), &Restaurant{
		Name:    "Halal Corner",
		Address: "123 Main St, New York, NY",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Lat != 40.7128 || res.Lng != -74.006 {
		t.Errorf("expected geocoded coordinates, got %f/%f", res.Lat, res.Lng)
	}
	if res.GeoStatus != "resolved" {
		t.Errorf("expected geo_status resolved, got %q", res.GeoStatus)
	}
}

// Zero geocoder results must not abort creation: the row is kept at (0,0)
// and flagged pending for the background worker.
func TestCreate_GeocodeZeroResultsStillCreates(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo, &mockGeocoder{found: false}, 10)

	res, err := service.Create(context.Background(), &Restaurant{
		Name:    "Nowhere Grill",
		Address: "does not exist",
	})
	if err != nil {
		t.Fatalf("expected creation to proceed, got %v", err)
	}

	if res.Lat != 0 || res.Lng != 0 {
		t.Errorf("expected 0/0 coordinates, got %f/%f", res.Lat, res.Lng)
	}
	if res.GeoStatus != "pending" {
		t.Errorf("expected geo_status pending, got %q", res.GeoStatus)
	}
}

func TestCreate_Defaults(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo, nil, 10)

	res, err := service.Create(context.Background(), &Restaurant{
		Name: "Plain Kebab",
		Lat:  1, Lng: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CuisineType != "Other" || res.HalalStatus != "Full" || res.PriceRange != "$$" {
		t.Errorf("unexpected defaults: %q %q %q", res.CuisineType, res.HalalStatus, res.PriceRange)
	}
}

func TestCreate_InvalidEnums(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo, nil, 10)

	if _, err := service.Create(context.Background(), &Restaurant{
		Name: "X", HalalStatus: "Mostly",
	}); err == nil {
		t.Error("expected error for invalid halal_status")
	}
	if _, err := service.Create(context.Background(), &Restaurant{
		Name: "X", PriceRange: "$$$$$",
	}); err == nil {
		t.Error("expected error for invalid price_range")
	}
}

// --------------------------------------------------
// Image batch upload through the moderation gate
// --------------------------------------------------

func multipartUpload(t *testing.T, path string, files map[string]string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, content := range files {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(content))
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImages_BatchWithOneUnsafe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := NewMockRepository()
	service := newTestService(repo, nil, 10)
	handler := NewHandler(service)

	res, _ := service.Create(context.Background(), &Restaurant{Name: "Test", Lat: 1, Lng: 1})

	r := gin.New()
	r.POST("/admin/restaurants/:id/images", handler.UploadImages)

	req := multipartUpload(t, "/admin/restaurants/"+res.ID+"/images", map[string]string{
		"one.jpg":   "fine photo",
		"two.jpg":   "unsafe photo",
		"three.jpg": "another fine photo",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var report UploadReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid report json: %v", err)
	}

	uploaded, rejected := 0, 0
	for _, o := range report.Outcomes {
		switch o.Status {
		case "uploaded":
			uploaded++
		case "rejected":
			rejected++
			if o.Reason == "" {
				t.Error("rejected outcome must carry a visible reason")
			}
		}
	}
	if uploaded != 2 || rejected != 1 {
		t.Fatalf("expected 2 uploaded / 1 rejected, got %d/%d", uploaded, rejected)
	}

	persisted, _ := repo.ListImages(context.Background(), res.ID)
	if len(persisted) != 2 {
		t.Fatalf("expected exactly 2 persisted images, got %d", len(persisted))
	}
}

func TestUploadImages_CapTruncatesBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	repo := NewMockRepository()
	service := newTestService(repo, nil, 2)
	handler := NewHandler(service)

	res, _ := service.Create(context.Background(), &Restaurant{Name: "Test", Lat: 1, Lng: 1})

	r := gin.New()
	r.POST("/admin/restaurants/:id/images", handler.UploadImages)

	req := multipartUpload(t, "/admin/restaurants/"+res.ID+"/images", map[string]string{
		"a.jpg": "x", "b.jpg": "x", "c.jpg": "x", "d.jpg": "x",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var report UploadReport
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid report json: %v", err)
	}

	if report.Dropped != 2 {
		t.Errorf("expected 2 dropped, got %d", report.Dropped)
	}
	if len(report.Outcomes) != 2 {
		t.Errorf("expected 2 outcomes, got %d", len(report.Outcomes))
	}
}

// --------------------------------------------------
// Open-now filter
// --------------------------------------------------

func TestSearch_OpenNowFilter(t *testing.T) {
	repo := NewMockRepository()
	service := newTestService(repo, nil, 10)

	// A window straddling the current minute on every day of the week, so
	// the restaurant is open no matter when the test runs.
	now := time.Now()
	nowMin := now.Hour()*60 + now.Minute()
	open := hours.Format24((nowMin + 1440 - 120) % 1440)
	close := hours.Format24((nowMin + 120) % 1440)
	window := open + " - " + close

	days := map[string]string{}
	for _, d := range []string{
		"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
	} {
		days[d] = window
	}
	alwaysOpen, _ := json.Marshal(days)

	service.Create(context.Background(), &Restaurant{
		Name: "Always Open", Lat: 1, Lng: 1, OpeningHours: alwaysOpen,
	})
	service.Create(context.Background(), &Restaurant{
		Name: "No Hours", Lat: 1, Lng: 1,
	})

	items, err := service.Search(context.Background(), Filter{OpenNow: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 || items[0].Name != "Always Open" {
		t.Fatalf("expected only the open restaurant, got %d items", len(items))
	}
}
