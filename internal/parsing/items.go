package parsing

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// tableState tracks where the item scan is relative to the item table.
type tableState int

const (
	beforeItems tableState = iota
	inItems
	done
)

func (s tableState) String() string {
	switch s {
	case beforeItems:
		return "before_items"
	case inItems:
		return "in_items"
	case done:
		return "done"
	default:
		return "unknown"
	}
}

var (
	// Column headers are matched case-sensitively, as printed.
	itemHeaderMarkers = []string{"ITEM NAME", "PRICE"}
	itemEndMarkers    = []string{"Sub Total Rs.", "Total Rs."}

	// name, price, quantity, subtotal
	itemLinePattern = regexp.MustCompile(`^(.+?)\s+(\d+\.\d{2})\s+(\d+)\s+(\d+\.\d{2})$`)
)

// Items scans the lines for an item table and returns its rows. Receipts
// without a recognizable table yield an empty list.
func Items(lines []string) []LineItem {
	items := make([]LineItem, 0)
	state := beforeItems

	for _, line := range lines {
		state = step(state, line, &items)
		if state == done {
			break
		}
	}
	return items
}

// step advances the scan by one line, appending any item the line holds.
func step(state tableState, line string, items *[]LineItem) tableState {
	switch state {
	case beforeItems:
		if isItemHeader(line) {
			return inItems
		}
		return beforeItems
	case inItems:
		if containsAny(line, itemEndMarkers) {
			return done
		}
		if item, ok := parseItemLine(line); ok {
			*items = append(*items, item)
		}
		return inItems
	default:
		return done
	}
}

func isItemHeader(line string) bool {
	for _, marker := range itemHeaderMarkers {
		if !strings.Contains(line, marker) {
			return false
		}
	}
	return true
}

func containsAny(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func parseItemLine(line string) (LineItem, bool) {
	m := itemLinePattern.FindStringSubmatch(line)
	if m == nil {
		return LineItem{}, false
	}

	price, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return LineItem{}, false
	}
	// Out of range quantities come back clamped to the int limit
	quantity, err := strconv.Atoi(m[3])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return LineItem{}, false
	}
	subtotal, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		return LineItem{}, false
	}

	return LineItem{
		Name:     strings.TrimSpace(m[1]),
		Price:    price,
		Quantity: quantity,
		Subtotal: subtotal,
	}, true
}
