package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDecodeDataURI(t *testing.T) {
	d := NewBitmapDecoder()
	data := pngBytes(t, 12, 8)
	ref := "data:image/png;base64," + base64.StdEncoding.EncodeToString(data)

	img, err := d.Decode(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
}

func TestDecodeDataURIRejectsMalformedInput(t *testing.T) {
	d := NewBitmapDecoder()

	_, err := d.Decode(context.Background(), "data:image/png;base64")
	assert.Error(t, err)

	_, err = d.Decode(context.Background(), "data:image/png,rawbytes")
	assert.Error(t, err)

	_, err = d.Decode(context.Background(), "data:image/png;base64,!!!notbase64!!!")
	assert.Error(t, err)
}

func TestDecodeFetchesHTTPSources(t *testing.T) {
	data := pngBytes(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	}))
	defer srv.Close()

	d := NewBitmapDecoder()
	img, err := d.Decode(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 5, img.Bounds().Dx())
}

func TestDecodeRejectsNon200Responses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	d := NewBitmapDecoder()
	_, err := d.Decode(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestDecodeRejectsNonImageBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	d := NewBitmapDecoder()
	_, err := d.Decode(context.Background(), srv.URL)
	assert.Error(t, err)
}

func TestDecodeRejectsUnsupportedSchemes(t *testing.T) {
	d := NewBitmapDecoder()

	_, err := d.Decode(context.Background(), "ftp://example.com/a.png")
	assert.Error(t, err)

	_, err = d.Decode(context.Background(), "/static/templates/tshirt_front.png")
	assert.Error(t, err)
}

func TestTruncateRefShortensLongReferences(t *testing.T) {
	long := make([]byte, 200)
	for i := range long {
		long[i] = 'a'
	}
	out := truncateRef(string(long))
	assert.Len(t, out, 64+3)
	assert.Equal(t, "short", truncateRef("short"))
}
