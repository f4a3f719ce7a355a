package parsing

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	datePattern = regexp.MustCompile(`(?i)(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})|(\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\w*\s+\d{1,2},\s+\d{4}\b)`)

	// The label may sit on its own line with the amount below it, so \s spans newlines.
	labeledTotalPattern = regexp.MustCompile(`(?i)(?:Grand Total|Net Total|Total|Amount Due|Balance)\s*:?\s*(?:Rs\.?|INR|[$€£₹])?\s*(\d{1,3}(?:,\d{3})+(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)

	trailingAmountPattern = regexp.MustCompile(`(?m)(\d+\.\d{2})[ \t\r]*$`)
)

// Date returns the first date-looking substring of the text, unmodified.
func Date(raw string) string {
	return datePattern.FindString(raw)
}

// Total finds the receipt total. A labeled total wins; otherwise the last
// two-decimal amount ending a line is used; otherwise zero.
func Total(raw string) float64 {
	if total, ok := labeledTotal(raw); ok {
		return total
	}
	if total, ok := trailingAmount(raw); ok {
		return total
	}
	return 0
}

func labeledTotal(raw string) (float64, bool) {
	m := labeledTotalPattern.FindStringSubmatch(raw)
	if m == nil {
		return 0, false
	}
	return parseAmount(strings.ReplaceAll(m[1], ",", ""))
}

func trailingAmount(raw string) (float64, bool) {
	matches := trailingAmountPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return 0, false
	}
	return parseAmount(matches[len(matches)-1][1])
}

func parseAmount(s string) (float64, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}
