package ingestion

import (
	"strconv"
	"strings"
	"time"
)

// Source files mix ISO and Brazilian day-first layouts, with and without a
// time component.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate tries every known layout and returns nil when none match.
// Unparsable dates are tolerated; the match then carries no datetime and
// its id uses the "unknown" date token.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed
		}
	}
	return nil
}

// parseGoals coerces a goal cell to a non-negative count, defaulting to 0
// on anything unparsable.
func parseGoals(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// parseOptionalInt returns nil instead of a zero value so absent ratings
// and seasons stay absent in the stored props.
func parseOptionalInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		// sources sometimes store ints as "2003.0"
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return nil
		}
		value = int(f)
	}
	return &value
}
