package domain

import (
	"strings"
	"time"
)

// ServiceDateLayout is the normalized form service dates take in the clean
// table.
const ServiceDateLayout = "2006-01-02"

// serviceDateLayouts are the input formats observed in the consolidated
// dataset, most common first. Timestamps keep only their date component.
var serviceDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseServiceDate parses a raw service-date value. The boolean is false when
// the value is empty or matches none of the known layouts; unparsable dates
// are undefined, never errors.
func ParseServiceDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "NaN" {
		return time.Time{}, false
	}
	for _, layout := range serviceDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}
