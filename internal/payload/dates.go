package payload

import (
	"regexp"
	"strings"
	"time"
)

// DateTimeLayout is the canonical delivery timestamp shape.
const DateTimeLayout = "2006-01-02 15:04:05"

var (
	whitespace = regexp.MustCompile(`\s+`)
	isoPrefix  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

	loadDateDashed = regexp.MustCompile(`^\d{2}-\d{2}-\d{4}$`)
	loadDateISO    = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})`)
	loadDateSlash  = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})`)
)

var isoLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var clockLayouts = []string{
	"1/2/2006 3:04 PM",
	"1/2/2006 3:04:05 PM",
	"1-2-2006 3:04 PM",
	"1-2-2006 3:04:05 PM",
}

var isoishLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
}

// NormalizeState upper-cases the delivery state and joins words with '_'. The in-transit
// spellings collapse to IN_TRANSIT; anything unrecognised passes through for display.
func NormalizeState(raw *string) string {
	if raw == nil {
		return ""
	}
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(*raw)), " ", "_")
	switch s {
	case "INTRANSIT", "IN-TRANSIT":
		return "IN_TRANSIT"
	}
	return s
}

// ParseDeliveryTime accepts ISO dates/date-times and month/day/year clock times with AM/PM.
// The returned time carries the wall clock of the source text.
func ParseDeliveryTime(raw string) (time.Time, bool) {
	s := whitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}

	upper := strings.ToUpper(s)
	for _, layout := range clockLayouts {
		if t, err := time.ParseInLocation(layout, upper, time.UTC); err == nil {
			return t, true
		}
	}

	if strings.Contains(s, "T") || isoPrefix.MatchString(s) {
		for _, layout := range isoishLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// CanonicalDateTime formats a parsed delivery time as YYYY-MM-DD HH:MM:SS.
func CanonicalDateTime(raw string) (string, bool) {
	t, ok := ParseDeliveryTime(raw)
	if !ok {
		return "", false
	}
	return t.Format(DateTimeLayout), true
}

// GuessLoadDate returns MM-DD-YYYY from the delivery time, or from createdAt when the import
// has no delivery time. Unrecognised input gives nil.
func GuessLoadDate(deliveryTime *string, createdAt *time.Time) *string {
	var dt string
	switch {
	case deliveryTime != nil && strings.TrimSpace(*deliveryTime) != "":
		dt = strings.TrimSpace(*deliveryTime)
	case createdAt != nil:
		dt = createdAt.Format(DateTimeLayout)
	default:
		return nil
	}

	if loadDateDashed.MatchString(dt) {
		return &dt
	}
	if m := loadDateISO.FindStringSubmatch(dt); m != nil {
		out := m[2] + "-" + m[3] + "-" + m[1]
		return &out
	}
	if m := loadDateSlash.FindStringSubmatch(dt); m != nil {
		out := m[1] + "-" + m[2] + "-" + m[3]
		return &out
	}
	return nil
}
