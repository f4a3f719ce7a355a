package receipt

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts covers ISO dates from the review form and the formats the
// receipt parser passes through as printed. Numeric dates are read US style.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"01.02.2006",
	"1.2.2006",
	"01/02/06",
	"1/2/06",
	"01-02-06",
	"1-2-06",
	"01.02.06",
	"1.2.06",
	"Jan 2, 2006",
	"January 2, 2006",
}

// parseExpenseDate parses a caller supplied date string.
func parseExpenseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
