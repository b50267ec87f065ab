package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"halalbites/internal/cache"
	"halalbites/internal/httperr"
)

// Client talks to the Google Places (New) REST API.
//
// Session-token semantics: the caller generates one token per focus session
// (NewSessionToken), sends it with every autocomplete call and with the final
// details call; Google bills the whole session as one unit, and the token is
// dead after the details call.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *cache.Client
}

func NewClient(cache *cache.Client) *Client {
	return &Client{
		apiKey:  os.Getenv("PLACES_API_KEY"),
		baseURL: "https://places.googleapis.com",
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   cache,
	}
}

// NewClientWith is used by tests to point at a stub server.
func NewClientWith(apiKey, baseURL string, c *cache.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   c,
	}
}

// Configured reports whether the API key is present. Callers surface a
// configuration error and disable the feature when it is not.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// NewSessionToken returns a fresh autocomplete session token.
func NewSessionToken() string {
	return uuid.New().String()
}

type Prediction struct {
	PlaceID       string `json:"place_id"`
	MainText      string `json:"main_text"`
	SecondaryText string `json:"secondary_text"`
}

const detailFieldMask = "id,displayName,formattedAddress,location," +
	"nationalPhoneNumber,websiteUri,priceLevel,regularOpeningHours," +
	"editorialSummary,photos,types,primaryType"

// Details mirrors the subset of the place record covered by the field mask.
type Details struct {
	ID          string `json:"id"`
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	NationalPhoneNumber string `json:"nationalPhoneNumber"`
	WebsiteURI          string `json:"websiteUri"`
	PriceLevel          string `json:"priceLevel"`
	RegularOpeningHours struct {
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"regularOpeningHours"`
	EditorialSummary struct {
		Text string `json:"text"`
	} `json:"editorialSummary"`
	Photos []struct {
		Name string `json:"name"`
	} `json:"photos"`
	Types       []string `json:"types"`
	PrimaryType string   `json:"primaryType"`
}

// --------------------------------------------------
// Autocomplete
// --------------------------------------------------
func (c *Client) Autocomplete(ctx context.Context, input, sessionToken string) ([]Prediction, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: places api key missing", httperr.ErrNotConfigured)
	}
	// The client debounces; the server only enforces the minimum length.
	if len(input) < 2 {
		return []Prediction{}, nil
	}

	payload := map[string]any{
		"input":                input,
		"includedPrimaryTypes": []string{"restaurant", "cafe", "bakery", "meal_takeaway"},
		"sessionToken":         sessionToken,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/places:autocomplete",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: autocomplete status %d: %s", httperr.ErrUpstream, resp.StatusCode, raw)
	}

	var result struct {
		Suggestions []struct {
			PlacePrediction struct {
				PlaceID string `json:"placeId"`
				Text    struct {
					Text string `json:"text"`
				} `json:"text"`
				StructuredFormat struct {
					MainText struct {
						Text string `json:"text"`
					} `json:"mainText"`
					SecondaryText struct {
						Text string `json:"text"`
					} `json:"secondaryText"`
				} `json:"structuredFormat"`
			} `json:"placePrediction"`
		} `json:"suggestions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}

	predictions := make([]Prediction, 0, len(result.Suggestions))
	for _, s := range result.Suggestions {
		p := s.PlacePrediction
		main := p.StructuredFormat.MainText.Text
		if main == "" {
			main = p.Text.Text
		}
		predictions = append(predictions, Prediction{
			PlaceID:       p.PlaceID,
			MainText:      main,
			SecondaryText: p.StructuredFormat.SecondaryText.Text,
		})
	}
	return predictions, nil
}

// --------------------------------------------------
// Place details
// --------------------------------------------------
// Cached by place id; a cache hit only skips the HTTP round trip, it does not
// change session accounting (the token is spent either way).
func (c *Client) Details(ctx context.Context, placeID, sessionToken string) (*Details, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("%w: places api key missing", httperr.ErrNotConfigured)
	}

	cacheKey := "places:details:" + placeID
	if raw := c.cache.Get(ctx, cacheKey); raw != nil {
		var cached Details
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
	}

	url := fmt.Sprintf("%s/v1/places/%s?sessionToken=%s", c.baseURL, placeID, sessionToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", detailFieldMask)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: details status %d: %s", httperr.ErrUpstream, resp.StatusCode, raw)
	}

	var details Details
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("%w: %v", httperr.ErrUpstream, err)
	}

	if raw, err := json.Marshal(&details); err == nil {
		c.cache.Set(ctx, cacheKey, raw, 24*time.Hour)
	}
	return &details, nil
}

// --------------------------------------------------
// Photo media
// --------------------------------------------------
func (c *Client) DownloadPhoto(ctx context.Context, photoName string) ([]byte, string, error) {
	url := fmt.Sprintf(
		"%s/v1/%s/media?maxWidthPx=1200&key=%s",
		c.baseURL, photoName, c.apiKey,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("photo media status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return data, resp.Header.Get("Content-Type"), nil
}
