package analyzer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/productfinder/backend/internal/llm"
)

// stubProvider is a deterministic, no-network provider that records the
// request it was given.
type stubProvider struct {
	content string
	err     error

	gotSystem string
	gotParts  []llm.ContentPart
	gotOpts   llm.Options
	calls     int
}

func (s *stubProvider) Complete(ctx context.Context, system string, user []llm.ContentPart, opts ...llm.Option) (*llm.Response, error) {
	s.calls++
	s.gotSystem = system
	s.gotParts = user
	for _, opt := range opts {
		opt(&s.gotOpts)
	}
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Response{Content: s.content}, nil
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestAnalyze(t *testing.T) {
	provider := &stubProvider{
		content: "```json\n" + `{"title":"Red Sneaker","brand":"Nike","category":"Footwear","confidence":0.92,"searchQueries":["red running shoes","Nike sneaker"]}` + "\n```",
	}
	a := New(provider)

	result, err := a.Analyze(context.Background(), testJPEG(t, 64, 48), "image/jpeg")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Title != "Red Sneaker" || result.Brand != "Nike" || result.Category != "Footwear" {
		t.Errorf("Analyze() result = %+v", result)
	}
	if result.Confidence != 0.92 {
		t.Errorf("Analyze() confidence = %v, want 0.92", result.Confidence)
	}
	if len(result.SearchQueries) != 2 {
		t.Errorf("Analyze() searchQueries = %v", result.SearchQueries)
	}

	if provider.gotOpts.MaxTokens != 500 {
		t.Errorf("Analyze() maxTokens = %d, want 500", provider.gotOpts.MaxTokens)
	}
	if provider.gotOpts.Temperature != 0.1 {
		t.Errorf("Analyze() temperature = %v, want 0.1", provider.gotOpts.Temperature)
	}

	if len(provider.gotParts) != 2 {
		t.Fatalf("Analyze() sent %d content parts, want 2", len(provider.gotParts))
	}
	if !strings.Contains(provider.gotParts[0].Text, "searchQueries") {
		t.Errorf("Analyze() prompt does not mention the required schema: %q", provider.gotParts[0].Text)
	}
	if !strings.HasPrefix(provider.gotParts[1].ImageURL, "data:image/jpeg;base64,") {
		t.Errorf("Analyze() image part is not a JPEG data URI")
	}
}

func TestAnalyzeMalformedReplyFallsBack(t *testing.T) {
	provider := &stubProvider{content: "Sorry, I cannot identify this product."}
	a := New(provider)

	result, err := a.Analyze(context.Background(), testJPEG(t, 32, 32), "image/jpeg")
	if err != nil {
		t.Fatalf("Analyze() unexpected error: %v", err)
	}

	if result.Title != "Product Detected" {
		t.Errorf("Analyze() title = %q, want fallback", result.Title)
	}
	if len(result.SearchQueries) == 0 {
		t.Error("Analyze() searchQueries empty in fallback result")
	}
}

func TestAnalyzeProviderErrorPropagates(t *testing.T) {
	provider := &stubProvider{err: llm.ErrUpstreamUnavailable}
	a := New(provider)

	_, err := a.Analyze(context.Background(), testJPEG(t, 32, 32), "image/jpeg")
	if !errors.Is(err, llm.ErrUpstreamUnavailable) {
		t.Errorf("Analyze() error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"not an image", []byte("just some text, definitely not pixels")},
		{"oversized input", make([]byte, MaxImageBytes+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubProvider{content: "{}"}
			a := New(provider)

			_, err := a.Analyze(context.Background(), tt.data, "")
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("Analyze() error = %v, want ErrInvalidImage", err)
			}
			if provider.calls != 0 {
				t.Errorf("Analyze() made %d provider calls for invalid input, want 0", provider.calls)
			}
		})
	}
}

func TestEncodeImageDownscales(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2048, 512))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}

	dataURI, err := encodeImage(buf.Bytes(), "image/png")
	if err != nil {
		t.Fatalf("encodeImage() unexpected error: %v", err)
	}

	const prefix = "data:image/jpeg;base64,"
	if !strings.HasPrefix(dataURI, prefix) {
		t.Fatalf("encodeImage() did not produce a JPEG data URI")
	}

	raw, err := base64.StdEncoding.DecodeString(dataURI[len(prefix):])
	if err != nil {
		t.Fatalf("encodeImage() produced invalid base64: %v", err)
	}

	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("encodeImage() output is not decodable JPEG: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 1024 || b.Dy() != 256 {
		t.Errorf("encodeImage() bounds = %dx%d, want 1024x256", b.Dx(), b.Dy())
	}
}

func TestEncodeImageSmallImageKeepsSize(t *testing.T) {
	data := testJPEG(t, 100, 80)

	dataURI, err := encodeImage(data, "image/jpeg")
	if err != nil {
		t.Fatalf("encodeImage() unexpected error: %v", err)
	}

	const prefix = "data:image/jpeg;base64,"
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURI, prefix))
	if err != nil {
		t.Fatalf("encodeImage() produced invalid base64: %v", err)
	}
	decoded, err := jpeg.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("encodeImage() output is not decodable JPEG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("encodeImage() bounds = %dx%d, want 100x80", b.Dx(), b.Dy())
	}
}
