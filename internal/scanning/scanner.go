package scanning

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrRecognitionFailed marks every failure of the upstream OCR provider.
	ErrRecognitionFailed = errors.New("text recognition failed")
	// ErrUnsupportedDocument means the upload could not be turned into an
	// image; the provider was never called.
	ErrUnsupportedDocument = errors.New("unsupported document")
)

// Scanner turns a receipt image or PDF into raw text
type Scanner interface {
	// RecognizeText returns all text found in the document, top to bottom.
	// A document with no recognizable text yields an empty string, not an
	// error. Uploads that cannot be decoded as an image return
	// ErrUnsupportedDocument.
	RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error)
	// Close closes the scanner and releases resources
	Close() error
}

// recognitionError wraps a provider failure so callers can tell it apart
// from local problems while keeping the provider's message.
func recognitionError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrRecognitionFailed, provider, err)
}
