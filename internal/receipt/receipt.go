package receipt

import (
	"time"

	"github.com/zombor/expense-scanner/internal/parsing"
)

// Expense is an accepted, persisted expense record
type Expense struct {
	ID          string             `json:"id"`
	Vendor      string             `json:"vendor,omitempty"`
	Category    string             `json:"category"`
	Icon        string             `json:"icon"`
	Amount      int                `json:"amount"` // Amount in cents
	Date        time.Time          `json:"date"`
	Items       []parsing.LineItem `json:"items,omitempty"`
	Filename    string             `json:"filename,omitempty"` // scanned image in storage, if any
	ContentType string             `json:"content_type,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// Scan is the result of scanning an uploaded receipt. It is shown to the
// user for review and is not persisted until accepted as an Expense.
type Scan struct {
	ID          string                `json:"id"`
	Filename    string                `json:"filename"`
	ContentType string                `json:"contentType"`
	RawText     string                `json:"rawText"`
	Receipt     parsing.ParsedReceipt `json:"receipt"`
	Structured  parsing.Draft         `json:"structured"`
}
