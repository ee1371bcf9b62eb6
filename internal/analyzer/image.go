package analyzer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// Uploads are bounded client-side at 5 MB; enforce the same here.
	MaxImageBytes = 5 << 20

	// Larger images are downscaled before upload to keep provider
	// payloads small.
	maxImageDim = 1024

	jpegQuality = 85
)

// encodeImage validates the upload and converts it into an inline data URI.
// Decodable images are downscaled to at most 1024px and re-encoded as JPEG;
// image formats the stdlib cannot decode pass through untouched.
func encodeImage(data []byte, mimeType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty image", ErrInvalidImage)
	}
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidImage, MaxImageBytes)
	}

	sniffed := http.DetectContentType(data)
	if !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidImage, sniffed)
	}

	if processed, ok := reencode(data); ok {
		data = processed
		mimeType = "image/jpeg"
	} else if mimeType == "" {
		mimeType = sniffed
	}

	return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
}

func reencode(data []byte) ([]byte, bool) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// Sniffed as an image but not a format we decode (e.g. webp);
		// let the provider handle the original bytes.
		return nil, false
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageDim || h > maxImageDim {
		if w >= h {
			h = h * maxImageDim / w
			w = maxImageDim
		} else {
			w = w * maxImageDim / h
			h = maxImageDim
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, false
	}
	return buf.Bytes(), true
}
