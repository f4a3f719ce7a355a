package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/zombor/expense-scanner/internal/parsing"
	"github.com/zombor/expense-scanner/internal/scanning"
)

const maxUploadSize = int64(50 << 20)

// writeJSON encodes v with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeJSONError writes {"message": message}
func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, scanning.ErrRecognitionFailed):
		return http.StatusBadGateway
	case errors.Is(err, scanning.ErrUnsupportedDocument), errors.Is(err, ErrInvalidExpense):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// detectContentType falls back to the file extension when the part has no type
func detectContentType(header string, filename string) string {
	contentType := strings.ToLower(strings.TrimSpace(header))
	if contentType != "" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleScanReceipt runs OCR and parsing on an uploaded receipt
func (s *Server) handleScanReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{
				"error": "File is too large. Maximum size is 50MB. Please compress or resize your image.",
			})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Error reading file. Please try again.",
		})
		return
	}

	contentType := detectContentType(header.Header.Get("Content-Type"), header.Filename)

	scan, err := s.service.ScanReceipt(r.Context(), header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "filename", header.Filename, "error", err)
		summary := "Server error during OCR process"
		if errors.Is(err, scanning.ErrUnsupportedDocument) {
			summary = "Unsupported file type"
		}
		writeJSON(w, statusFor(err), map[string]string{
			"error":   summary,
			"message": err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
		*Scan
	}{
		Message: "Expense bill scanned and parsed successfully.",
		Scan:    scan,
	})
}

// addExpenseRequest is the reviewed draft sent back by the client.
// Amount is in dollars and must be a JSON number. ID reuses the scan ID
// when the expense came from a scan.
type addExpenseRequest struct {
	ID          string             `json:"id"`
	Icon        string             `json:"icon"`
	Category    string             `json:"category"`
	Amount      any                `json:"amount"`
	Date        string             `json:"date"`
	Vendor      string             `json:"vendor"`
	Filename    string             `json:"filename"`
	ContentType string             `json:"contentType"`
	Items       []parsing.LineItem `json:"items"`
}

// toExpense validates the request and returns the message to show on failure
func (req addExpenseRequest) toExpense() (*Expense, string) {
	if strings.TrimSpace(req.Category) == "" || req.Amount == nil || req.Amount == 0.0 || strings.TrimSpace(req.Date) == "" {
		return nil, "All fields are required."
	}
	amount, ok := req.Amount.(float64)
	if !ok || amount <= 0 {
		return nil, "Amount must be a positive number."
	}
	cents, err := toCents(amount)
	if err != nil || cents <= 0 {
		return nil, "Amount must be a positive number."
	}
	date, err := parseExpenseDate(req.Date)
	if err != nil {
		return nil, "Invalid date."
	}

	// A stored scan can only be attached by the scan it belongs to
	id := strings.TrimSpace(req.ID)
	filename := ""
	if req.Filename != "" {
		filename = filepath.Base(req.Filename)
		if id == "" || !strings.HasPrefix(filename, id+"_") {
			return nil, "Invalid file reference."
		}
	}

	return &Expense{
		ID:          id,
		Vendor:      strings.TrimSpace(req.Vendor),
		Category:    strings.TrimSpace(req.Category),
		Icon:        req.Icon,
		Amount:      cents,
		Date:        date,
		Items:       req.Items,
		Filename:    filename,
		ContentType: req.ContentType,
	}, ""
}

// handleAddExpense saves a reviewed expense
func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, msg := req.toExpense()
	if expense == nil {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}
	if err := s.service.CreateExpense(expense); err != nil {
		slog.Error("Error creating expense", "error", err)
		code := statusFor(err)
		if code == http.StatusBadRequest {
			writeJSONError(w, code, err.Error())
			return
		}
		writeJSONError(w, code, "Server Error")
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// handleListExpenses returns all expenses, newest first
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.ListExpenses()
	if err != nil {
		slog.Error("Error listing expenses", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// handleDownloadExcel streams all expenses as an XLSX attachment
func (s *Server) handleDownloadExcel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="expense_details.xlsx"`)
	if err := s.service.ExportExpenses(w); err != nil {
		slog.Error("Error exporting expenses", "error", err)
		w.Header().Del("Content-Disposition")
		writeJSONError(w, http.StatusInternalServerError, "Server Error")
	}
}

// handleGetExpense returns a single expense
func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	expense, err := s.service.GetExpense(id)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusNotFound {
			writeJSONError(w, code, "Expense not found")
			return
		}
		slog.Error("Error getting expense", "id", id, "error", err)
		writeJSONError(w, code, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// handleGetExpenseFile returns the scanned image of an expense
func (s *Server) handleGetExpenseFile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	data, contentType, err := s.service.GetExpenseFile(id)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusNotFound {
			writeJSONError(w, code, "File not found")
			return
		}
		slog.Error("Error getting expense file", "id", id, "error", err)
		writeJSONError(w, code, "Server Error")
		return
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}

// handleDeleteExpense deletes an expense and its file
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.service.DeleteExpense(id); err != nil {
		code := statusFor(err)
		if code == http.StatusNotFound {
			writeJSONError(w, code, "Expense not found")
			return
		}
		slog.Error("Error deleting expense", "id", id, "error", err)
		writeJSONError(w, code, "Server Error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}
