package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// maxBitmapBytes caps fetched/inlined image sources. Oversized uploads
	// are a validation failure, not a crash.
	maxBitmapBytes = 10 << 20 // 10 MB
)

// BitmapDecoder resolves element image references into decoded bitmaps.
// Supports data URIs (inline uploads) and http(s) URLs (artwork library,
// CDN). Implements canvas.BitmapDecoder.
type BitmapDecoder struct {
	client *http.Client
}

// NewBitmapDecoder creates a decoder with a bounded fetch timeout
func NewBitmapDecoder() *BitmapDecoder {
	return &BitmapDecoder{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Decode resolves a source reference into decoded pixels. The error is the
// caller's signal to reject the element: no partial element is ever built
// from a ref that does not decode.
func (d *BitmapDecoder) Decode(ctx context.Context, sourceRef string) (image.Image, error) {
	switch {
	case strings.HasPrefix(sourceRef, "data:"):
		return d.decodeDataURI(sourceRef)
	case strings.HasPrefix(sourceRef, "http://"), strings.HasPrefix(sourceRef, "https://"):
		return d.fetchAndDecode(ctx, sourceRef)
	default:
		return nil, fmt.Errorf("unsupported image source reference %q", truncateRef(sourceRef))
	}
}

func (d *BitmapDecoder) decodeDataURI(ref string) (image.Image, error) {
	// data:image/png;base64,....
	comma := strings.IndexByte(ref, ',')
	if comma < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta := ref[len("data:"):comma]
	if !strings.Contains(meta, "base64") {
		return nil, fmt.Errorf("data URI must be base64 encoded")
	}
	if int64(len(ref)-comma) > maxBitmapBytes*4/3 {
		return nil, fmt.Errorf("image data exceeds %d bytes", maxBitmapBytes)
	}

	raw, err := base64.StdEncoding.DecodeString(ref[comma+1:])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URI: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func (d *BitmapDecoder) fetchAndDecode(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image request: %w", err)
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBitmapBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	if len(data) > maxBitmapBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxBitmapBytes)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func truncateRef(ref string) string {
	if len(ref) > 64 {
		return ref[:64] + "..."
	}
	return ref
}
