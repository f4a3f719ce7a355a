package scanning

import (
	"context"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"
	"google.golang.org/api/option"
)

var _ = Describe("Vision", func() {
	var (
		server  *ghttp.Server
		scanner *Vision
		text    string
		err     error
	)

	BeforeEach(func() {
		server = ghttp.NewServer()
		var newErr error
		scanner, newErr = NewVisionWithOptions(context.Background(),
			option.WithAPIKey("test-key"),
			option.WithEndpoint(server.URL()+"/"),
		)
		Expect(newErr).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		server.Close()
	})

	JustBeforeEach(func() {
		text, err = scanner.RecognizeText(context.Background(), pngBytes(), "image/png")
	})

	When("text is detected", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.CombineHandlers(
				ghttp.VerifyRequest(http.MethodPost, "/v1/images:annotate"),
				ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
					"responses": []map[string]any{
						{"fullTextAnnotation": map[string]any{"text": "Fresh Mart Grocers\nTotal: $45.67\n"}},
					},
				}),
			))
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns the full text annotation", func() {
			Expect(text).To(Equal("Fresh Mart Grocers\nTotal: $45.67"))
		})
	})

	When("no text is detected", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
				"responses": []map[string]any{{}},
			}))
		})

		It("returns empty text without an error", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(BeEmpty())
		})
	})

	When("the image is rejected", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusOK, map[string]any{
				"responses": []map[string]any{
					{"error": map[string]any{"code": 3, "message": "Bad image data."}},
				},
			}))
		})

		It("returns an upstream recognition failure", func() {
			Expect(err).To(MatchError(ErrRecognitionFailed))
			Expect(err.Error()).To(ContainSubstring("Bad image data."))
		})
	})

	When("the API call fails", func() {
		BeforeEach(func() {
			server.AppendHandlers(ghttp.RespondWithJSONEncoded(http.StatusForbidden, map[string]any{
				"error": map[string]any{"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"},
			}))
		})

		It("returns an upstream recognition failure", func() {
			Expect(err).To(MatchError(ErrRecognitionFailed))
			Expect(err.Error()).To(ContainSubstring("API key not valid"))
		})
	})
})
