package models

import (
	"strings"
	"time"
)

// Time wraps time.Time with the hub's timestamp quirks: the service emits
// RFC 3339 with seven fractional digits in most places, but drops the zone
// designator on some registry fields. Zone-less values are read as UTC.
type Time struct {
	time.Time
}

// NewTime returns a Time for t.
func NewTime(t time.Time) *Time {
	return &Time{Time: t}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)

	if value == "" || value == "null" {
		t.Time = time.Time{}

		return nil
	}

	var err error

	for _, layout := range timeLayouts {
		var parsed time.Time

		parsed, err = time.ParseInLocation(layout, value, time.UTC)

		if err == nil {
			t.Time = parsed

			return nil
		}
	}

	return err
}
