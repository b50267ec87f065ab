package places

import (
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"halalbites/internal/cache"
	"halalbites/internal/moderation"
	"halalbites/internal/restaurant"
)

// --------------------------------------------------
// Minimal restaurant.Repository for pipeline tests
// --------------------------------------------------

type stubRestaurantRepo struct {
	created []*restaurant.Restaurant
	images  map[string][]restaurant.Image
	nextID  int
}

func newStubRestaurantRepo() *stubRestaurantRepo {
	return &stubRestaurantRepo{images: make(map[string][]restaurant.Image), nextID: 1}
}

func (s *stubRestaurantRepo) Create(ctx context.Context, r *restaurant.Restaurant) error {
	r.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.created = append(s.created, r)
	return nil
}

func (s *stubRestaurantRepo) Update(ctx context.Context, r *restaurant.Restaurant) error { return nil }
func (s *stubRestaurantRepo) Delete(ctx context.Context, id string) error                { return nil }

func (s *stubRestaurantRepo) GetByID(ctx context.Context, id string) (*restaurant.Restaurant, error) {
	for _, r := range s.created {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, context.Canceled
}

func (s *stubRestaurantRepo) Search(ctx context.Context, f restaurant.Filter) ([]*restaurant.Restaurant, error) {
	return s.created, nil
}

func (s *stubRestaurantRepo) AddImage(ctx context.Context, img *restaurant.Image) error {
	img.ID = strconv.Itoa(s.nextID)
	s.nextID++
	s.images[img.RestaurantID] = append(s.images[img.RestaurantID], *img)
	return nil
}

func (s *stubRestaurantRepo) ListImages(ctx context.Context, restaurantID string) ([]restaurant.Image, error) {
	return s.images[restaurantID], nil
}

func (s *stubRestaurantRepo) SetPrimaryImage(ctx context.Context, restaurantID, imageID string) error {
	return nil
}

func (s *stubRestaurantRepo) RatingSummary(ctx context.Context, restaurantID string) (float64, int, error) {
	return 0, 0, nil
}

type stubUploader struct {
	failSubstring string
}

func (u *stubUploader) Upload(ctx context.Context, key string, file multipart.File) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (u *stubUploader) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if u.failSubstring != "" && strings.Contains(string(data), u.failSubstring) {
		return "", context.Canceled
	}
	return "https://cdn.test/" + key, nil
}

type allowAll struct{}

func (allowAll) Check(ctx context.Context, req moderation.Request) moderation.Result {
	return moderation.Result{Safe: true}
}

func newImporterUnderTest(baseURL string, repo *stubRestaurantRepo, up *stubUploader) *Importer {
	client := NewClientWith("key", baseURL, cache.New("", "", 0))
	svc := restaurant.NewService(repo, up, allowAll{}, nil, 10)
	return NewImporter(client, svc, up)
}

// --------------------------------------------------
// TESTS
// --------------------------------------------------

func TestImport_FullPipeline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/places/"):
			w.Write([]byte(`{
				"id": "abc123",
				"displayName": {"text": "Kebab Palace"},
				"formattedAddress": "123 Main St, New York, NY",
				"location": {"latitude": 40.7, "longitude": -74.0},
				"priceLevel": "PRICE_LEVEL_MODERATE",
				"primaryType": "turkish_restaurant",
				"regularOpeningHours": {
					"weekdayDescriptions": ["Monday: 10:00 AM – 10:00 PM"]
				},
				"photos": [
					{"name": "places/abc123/photos/p1"},
					{"name": "places/abc123/photos/p2"}
				]
			}`))
		case strings.Contains(r.URL.Path, "/media"):
			w.Write([]byte("jpeg-bytes-" + r.URL.Path))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	repo := newStubRestaurantRepo()
	importer := newImporterUnderTest(srv.URL, repo, &stubUploader{})

	created, err := importer.Import(context.Background(), "abc123", "tok", Prediction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if created.Name != "Kebab Palace" || created.PriceRange != "$$" || created.CuisineType != "Turkish" {
		t.Errorf("unexpected mapping: %+v", created)
	}
	if created.GooglePlaceID != "abc123" || created.GoogleDataFetchedAt == nil {
		t.Error("expected google provenance fields to be set")
	}
	if created.GeoStatus != "resolved" {
		t.Errorf("expected resolved geo, got %q", created.GeoStatus)
	}

	imgs := repo.images[created.ID]
	if len(imgs) != 2 {
		t.Fatalf("expected 2 re-hosted photos, got %d", len(imgs))
	}
	for _, img := range imgs {
		if !strings.HasPrefix(img.URL, "https://cdn.test/") {
			t.Errorf("photo not re-hosted: %s", img.URL)
		}
	}
}

// One photo failing to re-upload is skipped; the rest of the batch survives.
func TestImport_PartialPhotoFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/v1/places/"):
			w.Write([]byte(`{
				"displayName": {"text": "Kebab Palace"},
				"location": {"latitude": 1, "longitude": 1},
				"photos": [
					{"name": "places/abc/photos/good1"},
					{"name": "places/abc/photos/poison"},
					{"name": "places/abc/photos/good2"}
				]
			}`))
		case strings.Contains(r.URL.Path, "/media"):
			w.Write([]byte("photo:" + r.URL.Path))
		}
	}))
	defer srv.Close()

	repo := newStubRestaurantRepo()
	importer := newImporterUnderTest(srv.URL, repo, &stubUploader{failSubstring: "poison"})

	created, err := importer.Import(context.Background(), "abc", "tok", Prediction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.images[created.ID]) != 2 {
		t.Fatalf("expected 2 surviving photos, got %d", len(repo.images[created.ID]))
	}
}

// Details failure falls back to a minimal record built from the prediction.
func TestImport_DetailsFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := newStubRestaurantRepo()
	importer := newImporterUnderTest(srv.URL, repo, &stubUploader{})

	created, err := importer.Import(context.Background(), "abc", "tok", Prediction{
		PlaceID:       "abc",
		MainText:      "Kebab Palace",
		SecondaryText: "123 Main St, New York",
	})
	if err != nil {
		t.Fatalf("expected fallback, got error: %v", err)
	}

	if created.Name != "Kebab Palace" || created.Address != "123 Main St, New York" {
		t.Errorf("unexpected fallback record: %+v", created)
	}
	if created.Lat != 0 || created.Lng != 0 || created.GeoStatus != "pending" {
		t.Errorf("expected 0/0 pending coordinates, got %+v", created)
	}
}

// Without a usable prediction the details error surfaces.
func TestImport_DetailsFailureNoFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	repo := newStubRestaurantRepo()
	importer := newImporterUnderTest(srv.URL, repo, &stubUploader{})

	if _, err := importer.Import(context.Background(), "abc", "tok", Prediction{}); err == nil {
		t.Fatal("expected error when no fallback prediction is available")
	}
}
