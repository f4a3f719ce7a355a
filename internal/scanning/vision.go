package scanning

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

const visionTimeout = 30 * time.Second

// Vision implements the Scanner interface using Google Cloud Vision
// document text detection.
type Vision struct {
	service *vision.Service
}

// NewVision creates a Cloud Vision scanner. With an empty apiKey the client
// falls back to application default credentials.
func NewVision(ctx context.Context, apiKey string) (*Vision, error) {
	var opts []option.ClientOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return NewVisionWithOptions(ctx, opts...)
}

// NewVisionWithOptions creates a Cloud Vision scanner with explicit client
// options, such as a custom endpoint.
func NewVisionWithOptions(ctx context.Context, opts ...option.ClientOption) (*Vision, error) {
	service, err := vision.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating vision client: %w", err)
	}
	return &Vision{service: service}, nil
}

// RecognizeText runs DOCUMENT_TEXT_DETECTION on the receipt
func (v *Vision) RecognizeText(ctx context.Context, imageData []byte, contentType string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, visionTimeout)
	defer cancel()

	pngData, err := prepareImage(imageData, contentType)
	if err != nil {
		return "", err
	}

	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image:        &vision.Image{Content: base64.StdEncoding.EncodeToString(pngData)},
				Features:     []*vision.Feature{{Type: "DOCUMENT_TEXT_DETECTION"}},
				ImageContext: &vision.ImageContext{LanguageHints: []string{"en"}},
			},
		},
	}

	resp, err := v.service.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return "", recognitionError("vision", err)
	}
	if len(resp.Responses) == 0 {
		return "", nil
	}

	result := resp.Responses[0]
	if result.Error != nil {
		return "", recognitionError("vision", fmt.Errorf("code %d: %s", result.Error.Code, result.Error.Message))
	}
	if result.FullTextAnnotation == nil {
		return "", nil
	}
	return strings.TrimSpace(result.FullTextAnnotation.Text), nil
}

// Close is a no-op; the REST client holds no resources.
func (v *Vision) Close() error {
	return nil
}
