package places

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"halalbites/internal/restaurant"
	"halalbites/internal/storage"
)

const maxImportPhotos = 5

// Importer runs the autocomplete → details → persist pipeline.
type Importer struct {
	client      *Client
	restaurants *restaurant.Service
	storage     storage.Uploader
}

func NewImporter(client *Client, restaurants *restaurant.Service, store storage.Uploader) *Importer {
	return &Importer{
		client:      client,
		restaurants: restaurants,
		storage:     store,
	}
}

// Import fetches the full place record and persists it as a restaurant.
//
// A failed details fetch does not abort the flow: a minimal record is built
// from the prediction instead (name + secondary text as address), left at
// lat=0,lng=0 for the geocode worker to fix up. Photo failures are
// per-photo best effort.
func (i *Importer) Import(
	ctx context.Context,
	placeID string,
	sessionToken string,
	fallback Prediction,
) (*restaurant.Restaurant, error) {

	details, err := i.client.Details(ctx, placeID, sessionToken)
	if err != nil {
		log.Println("place details fetch failed, falling back to prediction:", err)
		return i.importFallback(ctx, placeID, fallback, err)
	}

	now := time.Now()
	res := &restaurant.Restaurant{
		Name:                details.DisplayName.Text,
		Address:             details.FormattedAddress,
		Lat:                 details.Location.Latitude,
		Lng:                 details.Location.Longitude,
		CuisineType:         MapCuisine(details.PrimaryType, details.Types),
		HalalStatus:         "Full",
		PriceRange:          MapPriceLevel(details.PriceLevel),
		OpeningHours:        MapOpeningHours(details.RegularOpeningHours.WeekdayDescriptions),
		Description:         details.EditorialSummary.Text,
		Phone:               details.NationalPhoneNumber,
		Website:             details.WebsiteURI,
		GooglePlaceID:       placeID,
		GoogleDataFetchedAt: &now,
	}

	created, err := i.restaurants.Create(ctx, res)
	if err != nil {
		return nil, err
	}

	i.importPhotos(ctx, created.ID, details)
	return created, nil
}

func (i *Importer) importFallback(
	ctx context.Context,
	placeID string,
	fallback Prediction,
	cause error,
) (*restaurant.Restaurant, error) {

	if fallback.MainText == "" {
		return nil, cause
	}

	now := time.Now()
	res := &restaurant.Restaurant{
		Name:                fallback.MainText,
		Address:             fallback.SecondaryText,
		GooglePlaceID:       placeID,
		GoogleDataFetchedAt: &now,
	}
	return i.restaurants.Create(ctx, res)
}

// Photos are never hot-linked: each one is downloaded and re-hosted on our
// own storage. One photo failing is logged and skipped.
func (i *Importer) importPhotos(ctx context.Context, restaurantID string, details *Details) {
	count := 0
	for _, photo := range details.Photos {
		if count >= maxImportPhotos {
			break
		}

		data, contentType, err := i.client.DownloadPhoto(ctx, photo.Name)
		if err != nil {
			log.Println("photo download skipped:", err)
			continue
		}

		key := fmt.Sprintf("restaurants/%s/%s.jpg", restaurantID, uuid.New().String())
		url, err := i.storage.UploadBytes(ctx, key, data, contentType)
		if err != nil {
			log.Println("photo upload skipped:", err)
			continue
		}

		img, err := i.restaurants.AddImageByURL(ctx, restaurantID, "", url)
		if err != nil {
			log.Println("photo record skipped:", err)
			continue
		}

		if count == 0 {
			_ = i.restaurants.SetPrimaryImage(ctx, restaurantID, img.ID)
		}
		count++
	}
}
