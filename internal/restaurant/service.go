package restaurant

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"log"
	"mime/multipart"
	"time"

	"halalbites/internal/hours"
	"halalbites/internal/moderation"
	"halalbites/internal/storage"
)

// Geocoder resolves an address to coordinates. found=false with a nil error
// means the provider returned zero results.
type Geocoder interface {
	Search(ctx context.Context, address string) (lat, lng float64, found bool, err error)
}

type Service struct {
	repo      Repository
	storage   storage.Uploader
	moderator moderation.Checker
	geocoder  Geocoder
	maxImages int
}

func NewService(
	repo Repository,
	store storage.Uploader,
	moderator moderation.Checker,
	geocoder Geocoder,
	maxImages int,
) *Service {
	if maxImages <= 0 {
		maxImages = 10
	}
	return &Service{
		repo:      repo,
		storage:   store,
		moderator: moderator,
		geocoder:  geocoder,
		maxImages: maxImages,
	}
}

// --------------------------------------------------
// Create restaurant
// --------------------------------------------------
// Missing coordinates are geocoded from the address. A zero-result lookup (or
// a geocoder error) still creates the row: it keeps lat=0,lng=0 and
// geo_status='pending' so the background worker can retry it later.
func (s *Service) Create(ctx context.Context, res *Restaurant) (*Restaurant, error) {
	if res.Name == "" {
		return nil, errors.New("missing required fields")
	}
	if res.CuisineType == "" {
		res.CuisineType = "Other"
	}
	if res.HalalStatus == "" {
		res.HalalStatus = "Full"
	}
	if res.PriceRange == "" {
		res.PriceRange = "$$"
	}
	if !validHalalStatus(res.HalalStatus) {
		return nil, errors.New("invalid halal_status")
	}
	if !validPriceRange(res.PriceRange) {
		return nil, errors.New("invalid price_range")
	}

	res.GeoStatus = "resolved"
	if res.Lat == 0 && res.Lng == 0 {
		res.GeoStatus = "pending"
		if s.geocoder != nil && res.Address != "" {
			lat, lng, found, err := s.geocoder.Search(ctx, res.Address)
			if err != nil {
				log.Println("geocoding failed, leaving pending:", err)
			} else if found {
				res.Lat = lat
				res.Lng = lng
				res.GeoStatus = "resolved"
			}
		}
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) Update(ctx context.Context, res *Restaurant) error {
	if res.ID == "" || res.Name == "" {
		return errors.New("missing required fields")
	}
	if !validHalalStatus(res.HalalStatus) {
		return errors.New("invalid halal_status")
	}
	if !validPriceRange(res.PriceRange) {
		return errors.New("invalid price_range")
	}
	if res.GeoStatus == "" {
		res.GeoStatus = "resolved"
		if res.Lat == 0 && res.Lng == 0 {
			res.GeoStatus = "pending"
		}
	}
	return s.repo.Update(ctx, res)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// --------------------------------------------------
// Search / browse
// --------------------------------------------------
func (s *Service) Search(ctx context.Context, f Filter) ([]ListItem, error) {
	restaurants, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]ListItem, 0, len(restaurants))
	for _, res := range restaurants {
		ev := hours.Status(hours.Normalize(res.OpeningHours), now)
		if f.OpenNow && !ev.IsOpen {
			continue
		}
		items = append(items, ListItem{Restaurant: res, HoursStatus: ev})
	}
	return items, nil
}

// --------------------------------------------------
// Detail view
// --------------------------------------------------
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{
		Restaurant:  res,
		HoursStatus: hours.Status(hours.Normalize(res.OpeningHours), time.Now()),
	}

	if images, err := s.repo.ListImages(ctx, id); err == nil {
		detail.Images = images
	}
	if avg, count, err := s.repo.RatingSummary(ctx, id); err == nil {
		detail.AvgRating = avg
		detail.ReviewCount = count
	}
	return detail, nil
}

// --------------------------------------------------
// Image intake (moderation gate, best-effort batch)
// --------------------------------------------------
// Each file is independent: an unsafe verdict discards that file with a
// visible reason, an upload failure skips it, and the rest of the batch
// continues. Files beyond the cap are dropped up front and counted.
func (s *Service) UploadImages(
	ctx context.Context,
	restaurantID string,
	userID string,
	files []*multipart.FileHeader,
) (*UploadReport, error) {

	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	report := &UploadReport{}
	if len(files) > s.maxImages {
		report.Dropped = len(files) - s.maxImages
		files = files[:s.maxImages]
	}

	for _, file := range files {
		report.Outcomes = append(report.Outcomes, s.uploadOne(ctx, restaurantID, userID, file))
	}
	return report, nil
}

func (s *Service) uploadOne(
	ctx context.Context,
	restaurantID string,
	userID string,
	file *multipart.FileHeader,
) UploadOutcome {

	outcome := UploadOutcome{Filename: file.Filename}

	f, err := file.Open()
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not read file"
		return outcome
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not read file"
		return outcome
	}

	verdict := s.moderator.Check(ctx, moderation.Request{
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Type:        moderation.TypeImage,
	})
	if !verdict.Safe {
		outcome.Status = "rejected"
		outcome.Reason = verdict.Reason
		return outcome
	}

	key := storage.ObjectKey("restaurants/"+restaurantID, file.Filename)
	url, err := s.storage.UploadBytes(ctx, key, data, file.Header.Get("Content-Type"))
	if err != nil {
		outcome.Status = "failed"
		outcome.Reason = "upload failed"
		return outcome
	}

	img := &Image{RestaurantID: restaurantID, URL: url, UploadedBy: userID}
	if err := s.repo.AddImage(ctx, img); err != nil {
		outcome.Status = "failed"
		outcome.Reason = "could not persist image"
		return outcome
	}

	outcome.Status = "uploaded"
	outcome.URL = url
	return outcome
}

// AddImageByURL records an externally hosted image. Only user-uploaded files
// go through moderation; pasted URLs are stored as-is.
func (s *Service) AddImageByURL(ctx context.Context, restaurantID, userID, url string) (*Image, error) {
	if url == "" {
		return nil, errors.New("missing url")
	}
	if _, err := s.repo.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}

	img := &Image{RestaurantID: restaurantID, URL: url, UploadedBy: userID}
	if err := s.repo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *Service) SetPrimaryImage(ctx context.Context, restaurantID, imageID string) error {
	return s.repo.SetPrimaryImage(ctx, restaurantID, imageID)
}

func (s *Service) ListImages(ctx context.Context, restaurantID string) ([]Image, error) {
	return s.repo.ListImages(ctx, restaurantID)
}
