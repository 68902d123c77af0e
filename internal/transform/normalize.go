package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order by parseDate. First match wins, so the list
// is deterministic over ambiguous inputs.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// excelEpoch is day zero of the 1900 date system used by xlsx serial dates.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// textSentinels are cell texts that spreadsheet tooling emits for absent
// values; they are treated as empty cells.
var textSentinels = map[string]struct{}{
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
	"#n/a": {},
}

// cleanText trims a cell and collapses spreadsheet null sentinels to "".
func cleanText(s string) string {
	t := strings.TrimSpace(s)
	if _, ok := textSentinels[strings.ToLower(t)]; ok {
		return ""
	}
	return t
}

// parseID coerces a cell to an integral identifier. Excel renders numeric
// cells as float text ("12.0"), so an integral float form is accepted;
// fractional values and non-numeric text are rejected.
func parseID(s string) (int64, error) {
	t := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(t, 10, 64); err == nil {
		return n, nil
	}

	f, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return 0, fmt.Errorf("not an integral value: %q", s)
	}
	return int64(f), nil
}

// parseDate coerces a cell to a calendar date at midnight UTC. It tries the
// layout list first; a purely numeric cell in a plausible range is treated as
// an xlsx serial date.
func parseDate(s string) (time.Time, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, t); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	// Serial dates between 1955 and 2173; anything outside is more likely
	// a stray number than a date.
	if serial, err := strconv.ParseFloat(t, 64); err == nil && serial >= 20000 && serial <= 100000 {
		d := excelEpoch.AddDate(0, 0, int(serial))
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("unparseable date: %q", s)
}
