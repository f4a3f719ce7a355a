package receipt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/expense-scanner/internal/metrics"
	"github.com/zombor/expense-scanner/internal/parsing"
	"github.com/zombor/expense-scanner/internal/scanning"
)

// ErrInvalidExpense is returned when an expense is missing a category,
// a positive amount or a date.
var ErrInvalidExpense = errors.New("invalid expense")

// IDGenerator generates unique IDs for scans and expenses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (uuidGenerator) Generate() string {
	return uuid.NewString()
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Service handles scanning receipts and managing expenses
type Service struct {
	db          DB
	scanner     scanning.Scanner
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
	metrics     *metrics.Recorder
}

// Option configures a Service
type Option func(*Service)

// WithMetrics records scans and saved expenses on r
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = r
	}
}

// NewService creates a new Service with UUID IDs and the system clock
func NewService(db DB, scanner scanning.Scanner, storage Storage, opts ...Option) *Service {
	s := &Service{
		db:          db,
		scanner:     scanner,
		storage:     storage,
		idGenerator: uuidGenerator{},
		timeSource:  systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, scanner scanning.Scanner, storage Storage, idGen IDGenerator, timeSrc TimeSource, opts ...Option) *Service {
	s := NewService(db, scanner, storage, opts...)
	s.idGenerator = idGen
	s.timeSource = timeSrc
	return s
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpaces      = regexp.MustCompile(`\s+`)
)

// sanitizeFilename drops special characters and shortens long phone-generated names
func sanitizeFilename(filename string) string {
	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = repeatedSpaces.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "receipt"
	}

	return base + ext
}

// ScanReceipt stores an upload, recognizes its text and parses it into a
// draft for review. Nothing is written to the database.
func (s *Service) ScanReceipt(ctx context.Context, filename string, data []byte, contentType string) (*Scan, error) {
	id := s.idGenerator.Generate()

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		s.metrics.Scan(metrics.OutcomeError)
		return nil, fmt.Errorf("saving file: %w", err)
	}

	start := time.Now()
	text, err := s.scanner.RecognizeText(ctx, data, contentType)
	s.metrics.ObserveOCR(time.Since(start))
	if err != nil {
		slog.Error("Failed to recognize receipt text",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		if delErr := s.storage.Delete(savedPath); delErr != nil {
			slog.Warn("Failed to delete file", "filename", savedPath, "error", delErr)
		}
		if errors.Is(err, scanning.ErrRecognitionFailed) {
			s.metrics.Scan(metrics.OutcomeOCRFailed)
		} else {
			s.metrics.Scan(metrics.OutcomeError)
		}
		return nil, fmt.Errorf("scanning receipt: %w", err)
	}

	parsed := parsing.Parse(text)
	s.metrics.Scan(metrics.OutcomeSuccess)
	s.metrics.Classified(parsed.Category)

	slog.Info("Scanned receipt",
		"id", id,
		"vendor", parsed.VendorName,
		"category", parsed.Category,
		"total", parsed.TotalAmount,
		"items", len(parsed.Items),
	)

	return &Scan{
		ID:          id,
		Filename:    savedPath,
		ContentType: contentType,
		RawText:     text,
		Receipt:     parsed,
		Structured:  parsed.Draft(),
	}, nil
}

// CreateExpense validates and saves a reviewed expense
func (s *Service) CreateExpense(expense *Expense) error {
	switch {
	case strings.TrimSpace(expense.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidExpense)
	case expense.Amount <= 0:
		return fmt.Errorf("%w: amount must be positive", ErrInvalidExpense)
	case expense.Date.IsZero():
		return fmt.Errorf("%w: date is required", ErrInvalidExpense)
	}

	if expense.ID != "" {
		_, err := s.db.GetExpense(expense.ID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: expense %s already exists", ErrInvalidExpense, expense.ID)
		case !errors.Is(err, ErrNotFound):
			return fmt.Errorf("checking existing expense: %w", err)
		}
	}

	now := s.timeSource.Now()
	if expense.ID == "" {
		expense.ID = s.idGenerator.Generate()
	}
	if expense.Icon == "" {
		expense.Icon = parsing.DefaultIcon
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = now
	}
	expense.UpdatedAt = now

	if err := s.db.SaveExpense(expense); err != nil {
		return fmt.Errorf("saving expense to database: %w", err)
	}
	s.metrics.ExpenseCreated()
	return nil
}

// GetExpense retrieves an expense by ID
func (s *Service) GetExpense(id string) (*Expense, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns all expenses, newest first
func (s *Service) ListExpenses() ([]*Expense, error) {
	expenses, err := s.db.ListExpenses()
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	if expenses == nil {
		expenses = []*Expense{}
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		if expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].CreatedAt.After(expenses[j].CreatedAt)
		}
		return expenses[i].Date.After(expenses[j].Date)
	})
	return expenses, nil
}

// DeleteExpense removes an expense and its stored file
func (s *Service) DeleteExpense(id string) error {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return fmt.Errorf("getting expense for deletion: %w", err)
	}

	if expense.Filename != "" {
		if err := s.storage.Delete(expense.Filename); err != nil {
			slog.Warn("Failed to delete file", "filename", expense.Filename, "error", err)
		}
	}

	if err := s.db.DeleteExpense(id); err != nil {
		return fmt.Errorf("deleting expense from database: %w", err)
	}
	return nil
}

// GetExpenseFile returns the scanned image of an expense and its content type
func (s *Service) GetExpenseFile(id string) ([]byte, string, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting expense: %w", err)
	}
	if expense.Filename == "" {
		return nil, "", fmt.Errorf("expense %s has no file: %w", id, ErrNotFound)
	}

	data, err := s.storage.Get(expense.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting expense file: %w", err)
	}

	return data, expense.ContentType, nil
}

// ExportExpenses writes every expense, newest first, as an XLSX workbook
func (s *Service) ExportExpenses(w io.Writer) error {
	expenses, err := s.ListExpenses()
	if err != nil {
		return err
	}
	return writeWorkbook(w, expenses)
}
