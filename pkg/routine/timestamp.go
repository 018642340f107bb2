package routine

import (
	"fmt"
	"time"
)

// Layouts accepted for a routine datetime, tried in order. Layouts without a
// zone are read in local time, the way a datetime-local input is.
var Layouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ZonedLayouts carry their own offset.
var ZonedLayouts = []string{
	"2006-01-02T15:04Z07:00",
	time.RFC3339,
	time.RFC3339Nano,
}

// InputLayout is how a datetime is written back into a form field.
const InputLayout = "2006-01-02T15:04"

// DefaultDisplayLayout renders a datetime for people.
const DefaultDisplayLayout = "Jan 2, 2006 3:04 PM"

func ParseTime(v string) (time.Time, error) {
	for _, layout := range Layouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range ZonedLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", v)
}

// FormatTime renders v with layout, falling back to the raw string when it
// does not parse.
func FormatTime(v, layout string) string {
	if layout == "" {
		layout = DefaultDisplayLayout
	}
	t, err := ParseTime(v)
	if err != nil {
		return v
	}
	return t.Format(layout)
}
