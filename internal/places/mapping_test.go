package places

import (
	"testing"

	"halalbites/internal/hours"
	"time"
)

func TestMapPriceLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"PRICE_LEVEL_INEXPENSIVE", "$"},
		{"PRICE_LEVEL_MODERATE", "$$"},
		{"PRICE_LEVEL_EXPENSIVE", "$$$"},
		{"PRICE_LEVEL_VERY_EXPENSIVE", "$$$$"},
		{"PRICE_LEVEL_UNSPECIFIED", "$$"},
		{"", "$$"},
	}

	for _, c := range cases {
		if got := MapPriceLevel(c.in); got != c.want {
			t.Errorf("MapPriceLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMapCuisine(t *testing.T) {
	if got := MapCuisine("japanese_restaurant", nil); got != "Japanese" {
		t.Errorf("primaryType match: got %q", got)
	}

	// primaryType unknown, first matching secondary type wins
	got := MapCuisine("restaurant", []string{"food", "turkish_restaurant", "italian_restaurant"})
	if got != "Turkish" {
		t.Errorf("secondary type match: got %q", got)
	}

	if got := MapCuisine("laundromat", []string{"point_of_interest"}); got != "Other" {
		t.Errorf("default: got %q", got)
	}
}

func TestMapOpeningHours(t *testing.T) {
	raw := MapOpeningHours([]string{
		"Monday: 10:00 AM – 9:00 PM",
		"Tuesday: Closed",
		"Friday: 6:00 PM – 2:00 AM",
	})
	if raw == nil {
		t.Fatal("expected hours, got nil")
	}

	// The output must be directly consumable by the hours normalizer.
	week := hours.Normalize(raw)

	mon := week["Monday"]
	if !mon.Open || mon.OpenMin != 600 || mon.CloseMin != 1260 {
		t.Errorf("Monday: got %+v", mon)
	}
	if week["Tuesday"].Open {
		t.Error("Tuesday should be closed")
	}

	fri := week["Friday"]
	if !fri.Open || fri.OpenMin != 1080 || fri.CloseMin != 120 {
		t.Errorf("Friday overnight: got %+v", fri)
	}

	// Friday 1 AM span carries into Saturday
	sat1am := time.Date(2025, time.June, 7, 1, 0, 0, 0, time.UTC) // a Saturday
	if ev := hours.Status(week, sat1am); !ev.IsOpen {
		t.Errorf("expected carried-over open at Sat 1 AM, got %+v", ev)
	}
}

func TestMapOpeningHours_Empty(t *testing.T) {
	if raw := MapOpeningHours(nil); raw != nil {
		t.Errorf("expected nil for empty input, got %s", raw)
	}
}
