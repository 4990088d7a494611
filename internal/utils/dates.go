package utils

import (
	"fmt"
	"strings"
	"time"
)

// Date spellings used across the service boundary. The SGK wire format is
// dotted day-first; the sync endpoints take the compact form.
const (
	ViziteDateLayout  = "02.01.2006"
	CompactDateLayout = "20060102"
)

// ParseViziteDate validates a dd.MM.yyyy date as the upstream expects it.
func ParseViziteDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	parsed, err := time.Parse(ViziteDateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in dd.MM.yyyy form", input)
	}

	return parsed, nil
}

// ParseCompactDate validates a yyyyMMdd date as used on the sync endpoints.
func ParseCompactDate(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}

	parsed, err := time.Parse(CompactDateLayout, input)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q is not in yyyyMMdd form", input)
	}

	return parsed, nil
}

func FormatViziteDate(t time.Time) string {
	return t.Format(ViziteDateLayout)
}
