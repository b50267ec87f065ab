package places

import (
	"encoding/json"
	"strings"

	"halalbites/internal/hours"
)

// --------------------------------------------------
// Price level → internal price range
// --------------------------------------------------
var priceLevels = map[string]string{
	"PRICE_LEVEL_FREE":           "$",
	"PRICE_LEVEL_INEXPENSIVE":    "$",
	"PRICE_LEVEL_MODERATE":       "$$",
	"PRICE_LEVEL_EXPENSIVE":      "$$$",
	"PRICE_LEVEL_VERY_EXPENSIVE": "$$$$",
}

// MapPriceLevel converts a Places price-level enum string to the internal
// $..$$$$ scale, defaulting to "$$" when unknown.
func MapPriceLevel(level string) string {
	if mapped, ok := priceLevels[level]; ok {
		return mapped
	}
	return "$$"
}

// --------------------------------------------------
// Place types → cuisine taxonomy
// --------------------------------------------------
// First match wins: primaryType first, then types in order.
var cuisineTypes = map[string]string{
	"afghani_restaurant":        "Afghan",
	"american_restaurant":       "American",
	"chinese_restaurant":        "Chinese",
	"indian_restaurant":         "Indian",
	"indonesian_restaurant":     "Indonesian",
	"italian_restaurant":        "Italian",
	"japanese_restaurant":       "Japanese",
	"korean_restaurant":         "Korean",
	"lebanese_restaurant":       "Lebanese",
	"mediterranean_restaurant":  "Mediterranean",
	"mexican_restaurant":        "Mexican",
	"middle_eastern_restaurant": "Middle Eastern",
	"pizza_restaurant":          "Pizza",
	"seafood_restaurant":        "Seafood",
	"steak_house":               "Steakhouse",
	"thai_restaurant":           "Thai",
	"turkish_restaurant":        "Turkish",
	"vietnamese_restaurant":     "Vietnamese",
	"cafe":                      "Cafe",
	"bakery":                    "Bakery",
	"barbecue_restaurant":       "BBQ",
	"fast_food_restaurant":      "Fast Food",
	"sandwich_shop":             "Sandwiches",
}

// MapCuisine resolves the internal cuisine type from Google place types,
// defaulting to "Other".
func MapCuisine(primaryType string, types []string) string {
	if cuisine, ok := cuisineTypes[primaryType]; ok {
		return cuisine
	}
	for _, t := range types {
		if cuisine, ok := cuisineTypes[t]; ok {
			return cuisine
		}
	}
	return "Other"
}

// --------------------------------------------------
// Weekday descriptions → canonical opening hours
// --------------------------------------------------
// Input lines look like "Monday: 10:00 AM – 11:00 PM" or "Sunday: Closed".
// Output is the structured per-day shape stored in opening_hours.
func MapOpeningHours(weekdayDescriptions []string) json.RawMessage {
	if len(weekdayDescriptions) == 0 {
		return nil
	}

	type dayHours struct {
		IsOpen    bool   `json:"isOpen"`
		OpenTime  string `json:"openTime"`
		CloseTime string `json:"closeTime"`
	}

	week := make(map[string]dayHours)
	for _, line := range weekdayDescriptions {
		day, rest, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		day = strings.TrimSpace(day)
		rest = strings.TrimSpace(rest)

		if strings.EqualFold(rest, "closed") || rest == "" {
			week[day] = dayHours{}
			continue
		}

		var parts []string
		for _, sep := range []string{"–", "—", " - "} {
			if strings.Contains(rest, sep) {
				parts = strings.SplitN(rest, sep, 2)
				break
			}
		}
		if len(parts) != 2 {
			week[day] = dayHours{}
			continue
		}

		open, okOpen := hours.ParseClock(cleanClock(parts[0]))
		close, okClose := hours.ParseClock(cleanClock(parts[1]))
		if !okOpen || !okClose {
			week[day] = dayHours{}
			continue
		}

		week[day] = dayHours{
			IsOpen:    true,
			OpenTime:  hours.Format24(open),
			CloseTime: hours.Format24(close),
		}
	}

	if len(week) == 0 {
		return nil
	}
	raw, err := json.Marshal(week)
	if err != nil {
		return nil
	}
	return raw
}

// cleanClock strips the narrow no-break spaces Google puts around meridiems.
func cleanClock(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(s)
}
