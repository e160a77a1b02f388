package codec

import (
	"time"

	wirebind "github.com/reoring/wirebind"
)

// TimeRFC3339 converts between RFC3339 strings and time.Time. Output is
// normalized to UTC.
func TimeRFC3339() wirebind.Converter[time.Time] {
	return Transform(wirebind.String(), "date-time", parseRFC3339, func(t time.Time) (string, error) {
		return formatRFC3339Canonical(t), nil
	})
}

func parseRFC3339(s string) (time.Time, error) {
	// Accept RFC3339Nano (trailing zeros optional)
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}

func formatRFC3339Canonical(t time.Time) string {
	// Normalize to UTC and format using RFC3339Nano (Go trims trailing zeros)
	return t.UTC().Format(time.RFC3339Nano)
}
