package hours

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Stored opening hours arrive in more than one shape: a per-day map of range
// strings ("10:00 AM – 11:00 PM" / "Closed"), or a per-day map of structured
// objects ({isOpen, openTime, closeTime} with 24-hour HH:MM), sometimes
// double-encoded as a JSON string. Day keys may be full names or 3-letter
// abbreviations. Normalize resolves all of that into Week once, at the
// boundary; nothing past this package sees the raw shape.

// DaySpan is the canonical per-day schedule in minutes since midnight.
type DaySpan struct {
	Open     bool
	OpenMin  int
	CloseMin int
}

// Week maps full day names ("Monday") to their span.
type Week map[string]DaySpan

// Evaluation is the open/closed verdict for a moment in time.
type Evaluation struct {
	IsOpen bool   `json:"isOpen"`
	Status string `json:"status"`
}

var dayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday",
	"Thursday", "Friday", "Saturday",
}

// structured per-day entry as stored by the submission form
type structuredDay struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime"`
	CloseTime string `json:"closeTime"`
}

// Normalize converts a raw opening_hours JSON value into a canonical Week.
// Malformed entries fail closed: a day we cannot parse is treated as closed,
// and input we cannot interpret at all yields an empty Week.
func Normalize(raw []byte) Week {
	if len(raw) == 0 {
		return nil
	}

	// Unwrap a double-encoded payload ("\"{...}\"").
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		raw = []byte(asString)
	}

	var days map[string]json.RawMessage
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil
	}

	week := make(Week, len(days))
	for key, val := range days {
		day, ok := canonicalDay(key)
		if !ok {
			continue
		}

		var rangeStr string
		if err := json.Unmarshal(val, &rangeStr); err == nil {
			week[day] = parseRangeString(rangeStr)
			continue
		}

		var sd structuredDay
		if err := json.Unmarshal(val, &sd); err == nil {
			week[day] = parseStructured(sd)
			continue
		}

		week[day] = DaySpan{}
	}
	return week
}

// canonicalDay resolves "monday", "Mon", "MONDAY" to "Monday".
func canonicalDay(key string) (string, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, name := range dayNames {
		lower := strings.ToLower(name)
		if key == lower || key == lower[:3] {
			return name, true
		}
	}
	return "", false
}

// parseRangeString handles "10:00 AM – 11:00 PM" and "Closed".
func parseRangeString(s string) DaySpan {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "closed") {
		return DaySpan{}
	}

	var parts []string
	for _, sep := range []string{"–", "—", " - ", "-"} {
		if strings.Contains(s, sep) {
			parts = strings.SplitN(s, sep, 2)
			break
		}
	}
	if len(parts) != 2 {
		return DaySpan{}
	}

	open, okOpen := ParseClock(parts[0])
	close, okClose := ParseClock(parts[1])
	if !okOpen || !okClose {
		return DaySpan{}
	}
	return DaySpan{Open: true, OpenMin: open, CloseMin: close}
}

func parseStructured(sd structuredDay) DaySpan {
	if !sd.IsOpen {
		return DaySpan{}
	}
	open, okOpen := ParseClock(sd.OpenTime)
	close, okClose := ParseClock(sd.CloseTime)
	if !okOpen || !okClose {
		return DaySpan{}
	}
	return DaySpan{Open: true, OpenMin: open, CloseMin: close}
}

// ParseClock parses "HH:MM" (24-hour) or "h:MM AM/PM" into minutes since
// midnight.
func ParseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	meridiem := ""
	upper := strings.ToUpper(s)
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(s[:len(s)-2])
			break
		}
	}

	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if m < 0 || m > 59 {
		return 0, false
	}

	switch meridiem {
	case "AM":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
	case "PM":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h != 12 {
			h += 12
		}
	default:
		if h < 0 || h > 23 {
			return 0, false
		}
	}
	return h*60 + m, true
}

// FormatClock renders minutes since midnight as a 12-hour label ("9:30 PM").
func FormatClock(min int) string {
	min = ((min % 1440) + 1440) % 1440
	h := min / 60
	m := min % 60

	meridiem := "AM"
	if h >= 12 {
		meridiem = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", h12, m, meridiem)
}

// Format24 renders minutes since midnight as 24-hour "HH:MM".
func Format24(min int) string {
	min = ((min % 1440) + 1440) % 1440
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Status evaluates a Week at the given moment.
func Status(week Week, now time.Time) Evaluation {
	if len(week) == 0 {
		return Evaluation{Status: "Hours unknown"}
	}

	nowMin := now.Hour()*60 + now.Minute()
	today := dayNames[now.Weekday()]
	yesterday := dayNames[(int(now.Weekday())+6)%7]

	// A span from yesterday that closes after midnight may still be running.
	if y, ok := week[yesterday]; ok && y.Open && y.CloseMin < y.OpenMin && nowMin < y.CloseMin {
		return openVerdict(y.CloseMin - nowMin)
	}

	t, ok := week[today]
	if !ok {
		return Evaluation{Status: "Hours unknown"}
	}
	if !t.Open {
		return Evaluation{Status: "Closed today"}
	}

	// Today's span crossing midnight: open from OpenMin until CloseMin
	// tomorrow.
	if t.CloseMin < t.OpenMin {
		if nowMin >= t.OpenMin {
			return openVerdict(t.CloseMin + 1440 - nowMin)
		}
		return Evaluation{Status: "Opens at " + FormatClock(t.OpenMin)}
	}

	if nowMin >= t.OpenMin && nowMin < t.CloseMin {
		return openVerdict(t.CloseMin - nowMin)
	}
	if nowMin < t.OpenMin {
		return Evaluation{Status: "Opens at " + FormatClock(t.OpenMin)}
	}
	return Evaluation{Status: "Closed"}
}

func openVerdict(remaining int) Evaluation {
	if remaining <= 60 {
		return Evaluation{IsOpen: true, Status: fmt.Sprintf("Closes in %d min", remaining)}
	}
	return Evaluation{IsOpen: true, Status: "Open now"}
}
