// Package parsing turns raw OCR text from a receipt into a structured expense
// record. Every function here is pure and safe for concurrent use.
package parsing

// LineItem is one row of a receipt's item table.
type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"` // as printed, never recomputed
}

// ParsedReceipt is the best-effort structured view of a receipt.
// An empty VendorName or Date means the field was not found.
type ParsedReceipt struct {
	VendorName  string     `json:"vendorName,omitempty"`
	Date        string     `json:"date,omitempty"`
	TotalAmount float64    `json:"totalAmount"`
	Items       []LineItem `json:"items"`
	Category    string     `json:"category"`
	Icon        string     `json:"icon"`
}

// Draft is the subset of a parsed receipt an expense is created from.
type Draft struct {
	Icon     string  `json:"icon"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Date     string  `json:"date,omitempty"`
}

// Draft returns the fields a reviewer confirms before the expense is saved.
func (p ParsedReceipt) Draft() Draft {
	return Draft{
		Icon:     p.Icon,
		Category: p.Category,
		Amount:   p.TotalAmount,
		Date:     p.Date,
	}
}

// Parse extracts vendor, date, total, line items, category and icon from raw
// receipt text. It never fails; fields that cannot be found keep their defaults.
func Parse(rawText string) ParsedReceipt {
	lines := Lines(rawText)

	vendor := Vendor(lines)
	items := Items(lines)
	category := Classify(vendor, items)

	return ParsedReceipt{
		VendorName:  vendor,
		Date:        Date(rawText),
		TotalAmount: Total(rawText),
		Items:       items,
		Category:    category,
		Icon:        Icon(category),
	}
}
