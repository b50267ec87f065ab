package restaurant

import (
	"encoding/json"
	"time"

	"halalbites/internal/hours"
)

// Closed enumerations enforced by the pg ENUM types.
var (
	HalalStatuses = []string{"Full", "Partial"}
	PriceRanges   = []string{"$", "$$", "$$$", "$$$$"}
)

type Restaurant struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Address             string          `json:"address"`
	Lat                 float64         `json:"lat"`
	Lng                 float64         `json:"lng"`
	GeoStatus           string          `json:"geo_status"`
	CuisineType         string          `json:"cuisine_type"`
	HalalStatus         string          `json:"halal_status"`
	PriceRange          string          `json:"price_range"`
	OpeningHours        json.RawMessage `json:"opening_hours,omitempty"`
	Description         string          `json:"description,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Website             string          `json:"website,omitempty"`
	IsSponsored         bool            `json:"is_sponsored"`
	GooglePlaceID       string          `json:"google_place_id,omitempty"`
	GoogleDataFetchedAt *time.Time      `json:"google_data_fetched_at,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type Image struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	URL          string    `json:"url"`
	IsPrimary    bool      `json:"is_primary"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListItem is a search result row decorated with the open/closed verdict.
type ListItem struct {
	*Restaurant
	HoursStatus hours.Evaluation `json:"hours_status"`
	PrimaryImage string          `json:"primary_image,omitempty"`
}

// Detail is the full restaurant view.
type Detail struct {
	*Restaurant
	HoursStatus hours.Evaluation `json:"hours_status"`
	Images      []Image          `json:"images"`
	AvgRating   float64          `json:"avg_rating"`
	ReviewCount int              `json:"review_count"`
}

// Filter narrows a search. Zero values mean "no constraint".
type Filter struct {
	Query       string
	CuisineType string
	HalalStatus string
	PriceRange  string
	OpenNow     bool
	// ForMap returns only rows with resolved coordinates.
	ForMap bool
}

// UploadOutcome reports what happened to one item of an image batch.
type UploadOutcome struct {
	Filename string `json:"filename"`
	Status   string `json:"status"` // uploaded | rejected | failed
	URL      string `json:"url,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// UploadReport is the whole-batch result. Items over the cap are truncated
// and counted in Dropped.
type UploadReport struct {
	Outcomes []UploadOutcome `json:"outcomes"`
	Dropped  int             `json:"dropped"`
}

func validHalalStatus(s string) bool {
	for _, v := range HalalStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func validPriceRange(s string) bool {
	for _, v := range PriceRanges {
		if s == v {
			return true
		}
	}
	return false
}
