package parsing

import "strings"

// Expense categories.
const (
	Groceries      = "Groceries"
	FoodAndDining  = "Food & Dining"
	Transportation = "Transportation"
	Health         = "Health"
	Shopping       = "Shopping"
	Utilities      = "Utilities"
	Entertainment  = "Entertainment"
	Miscellaneous  = "Miscellaneous"
)

// DefaultIcon is used for any category without a dedicated icon.
const DefaultIcon = "money-bill"

type keywordRule struct {
	category string
	keywords []string
}

// vendorRules is evaluated in order and the first match wins, so the order
// of this slice is the tie-break between categories.
var vendorRules = []keywordRule{
	{Groceries, []string{"grocery", "supermart", "fresh", "market"}},
	{FoodAndDining, []string{"restaurant", "cafe", "diner", "hotel"}},
	{Transportation, []string{"gas", "petrol", "fuel"}},
	{Health, []string{"pharmacy", "hospital", "clinic"}},
	{Shopping, []string{"clothing", "fashion", "boutique"}},
	{Utilities, []string{"utility", "electric", "water", "internet"}},
}

// Only consulted when no vendor rule matched.
var itemRule = keywordRule{Entertainment, []string{"movie", "ticket", "entertainment"}}

var icons = map[string]string{
	FoodAndDining:  "utensils",
	Groceries:      "shopping-cart",
	Transportation: "car",
	Health:         "heartbeat",
	Shopping:       "bag-shopping",
	Utilities:      "lightbulb",
	Entertainment:  "ticket",
}

// Categories returns every category Classify can produce, in priority order.
func Categories() []string {
	out := make([]string, 0, len(vendorRules)+2)
	for _, rule := range vendorRules {
		out = append(out, rule.category)
	}
	return append(out, itemRule.category, Miscellaneous)
}

// Classify picks a category from the vendor name, falling back to item names.
func Classify(vendor string, items []LineItem) string {
	lowerVendor := strings.ToLower(vendor)
	for _, rule := range vendorRules {
		if rule.matches(lowerVendor) {
			return rule.category
		}
	}

	for _, item := range items {
		if itemRule.matches(strings.ToLower(item.Name)) {
			return itemRule.category
		}
	}

	return Miscellaneous
}

func (r keywordRule) matches(s string) bool {
	for _, keyword := range r.keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// Icon returns the display icon name for a category.
func Icon(category string) string {
	if icon, ok := icons[category]; ok {
		return icon
	}
	return DefaultIcon
}
