package row

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
	"02.01.2006, 15:04:05",
	"02.01.2006, 15:04",
	"02.01.2006 15:04",
	"02.01.2006",
	"02-01-2006",
	"02/01/2006 15:04",
	"02/01/2006",
}

// ParseDate tries the known export layouts in order. Dates without a zone are
// read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
