package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"mockup-studio/canvas"
	"mockup-studio/utils"
)

const (
	// ThumbnailMaxDim bounds the persisted thumbnail's longest side
	ThumbnailMaxDim = 300

	// DownloadScale is the pixel density of the downloadable mockup
	DownloadScale = 2.0

	backgroundOverlayAlpha = 216
)

// RenderService rasterizes a canvas session: background, garment-color
// overlay and elements in z-order. It draws the element model only, so the
// output can never contain selection handles or other editor chrome.
type RenderService struct {
	decoder canvas.BitmapDecoder // optional, resolves template backgrounds

	mu    sync.Mutex
	fonts map[string]*truetype.Font
	faces map[string]font.Face
}

// NewRenderService creates a renderer. decoder may be nil; template
// backgrounds then render as a plain garment-color fill.
func NewRenderService(decoder canvas.BitmapDecoder) (*RenderService, error) {
	rs := &RenderService{
		decoder: decoder,
		fonts:   make(map[string]*truetype.Font),
		faces:   make(map[string]font.Face),
	}

	for name, ttf := range map[string][]byte{
		"regular": goregular.TTF,
		"bold":    gobold.TTF,
		"italic":  goitalic.TTF,
		"mono":    gomono.TTF,
	} {
		f, err := truetype.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s font: %w", name, err)
		}
		rs.fonts[name] = f
	}
	return rs, nil
}

// face returns a cached font face for a family/size pair. Families map onto
// the bundled Go fonts; anything unrecognized renders as regular.
func (rs *RenderService) face(family string, sizePx float64) font.Face {
	key := fmt.Sprintf("%s|%.2f", family, sizePx)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if f, ok := rs.faces[key]; ok {
		return f
	}

	name := "regular"
	lower := strings.ToLower(family)
	switch {
	case strings.Contains(lower, "mono"), strings.Contains(lower, "courier"):
		name = "mono"
	case strings.Contains(lower, "bold"), strings.Contains(lower, "impact"):
		name = "bold"
	case strings.Contains(lower, "italic"):
		name = "italic"
	}

	f := truetype.NewFace(rs.fonts[name], &truetype.Options{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	rs.faces[key] = f
	return f
}

// Render rasterizes the session at the given scale factor. Elements are
// drawn in list order so later elements land on top.
func (rs *RenderService) Render(ctx context.Context, s *canvas.Session, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	tpl := s.Template()
	w := int(math.Round(tpl.CanvasWidth * scale))
	h := int(math.Round(tpl.CanvasHeight * scale))
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("template %s has no drawable area", tpl.Key)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	rs.drawBackground(ctx, dc, s, scale)

	for _, el := range s.Elements() {
		switch e := el.(type) {
		case *canvas.ImageElement:
			rs.drawImageElement(dc, e, scale)
		case *canvas.TextElement:
			rs.drawTextElement(dc, e, scale)
		}
	}

	return dc.Image(), nil
}

// drawBackground paints the template background image when it resolves and
// lays the garment color over it; with no background the color fills the
// canvas directly.
func (rs *RenderService) drawBackground(ctx context.Context, dc *gg.Context, s *canvas.Session, scale float64) {
	tpl := s.Template()
	gc := utils.ParseHexColor(s.GarmentColor())
	w := float64(dc.Width())
	h := float64(dc.Height())

	var background image.Image
	ref := tpl.BackgroundImageRef
	if rs.decoder != nil && (strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")) {
		img, err := rs.decoder.Decode(ctx, ref)
		if err != nil {
			log.Printf("⚠️  Render: template background %s unavailable: %v", tpl.Key, err)
		} else {
			background = img
		}
	}

	if background != nil {
		resized := imaging.Resize(background, dc.Width(), dc.Height(), imaging.Lanczos)
		dc.DrawImage(resized, 0, 0)
		dc.SetColor(color.RGBA{R: gc.R, G: gc.G, B: gc.B, A: backgroundOverlayAlpha})
	} else {
		dc.SetColor(gc)
	}
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

func (rs *RenderService) drawImageElement(dc *gg.Context, e *canvas.ImageElement, scale float64) {
	if e.Bitmap == nil {
		// Inert element: decode pending or failed, nothing to draw.
		return
	}
	tw := int(math.Round(e.Width * scale))
	th := int(math.Round(e.Height * scale))
	if tw < 1 || th < 1 {
		return
	}
	resized := imaging.Resize(e.Bitmap, tw, th, imaging.Lanczos)

	cx := (e.X + e.Width/2) * scale
	cy := (e.Y + e.Height/2) * scale
	dc.Push()
	dc.RotateAbout(gg.Radians(e.Rotation), cx, cy)
	dc.DrawImageAnchored(resized, int(math.Round(cx)), int(math.Round(cy)), 0.5, 0.5)
	dc.Pop()
}

func (rs *RenderService) drawTextElement(dc *gg.Context, e *canvas.TextElement, scale float64) {
	if strings.TrimSpace(e.Text) == "" || e.FontSizePx <= 0 {
		return
	}
	// Rendered onto its own surface first so rotation applies to the glyphs,
	// not just the anchor point.
	bitmap := rs.renderTextBitmap(e, scale)

	cx := e.X * scale
	cy := e.Y * scale
	dc.Push()
	dc.RotateAbout(gg.Radians(e.Rotation), cx, cy)
	dc.DrawImageAnchored(bitmap, int(math.Round(cx)), int(math.Round(cy)), 0.5, 0.5)
	dc.Pop()
}

func (rs *RenderService) renderTextBitmap(e *canvas.TextElement, scale float64) image.Image {
	face := rs.face(e.FontFamily, e.FontSizePx*scale)

	measure := gg.NewContext(1, 1)
	measure.SetFontFace(face)
	tw, th := measure.MeasureString(e.Text)

	pad := e.FontSizePx * scale * 0.5
	w := int(math.Ceil(tw + 2*pad))
	h := int(math.Ceil(th + 2*pad))

	tc := gg.NewContext(w, h)
	tc.SetFontFace(face)
	tc.SetColor(utils.ParseHexColor(e.FillColor))
	tc.DrawStringAnchored(e.Text, float64(w)/2, float64(h)/2, 0.5, 0.5)
	return tc.Image()
}

// RenderThumbnail produces the persisted preview: a 1x render downsampled to
// ThumbnailMaxDim on its longest side, PNG encoded
func (rs *RenderService) RenderThumbnail(ctx context.Context, s *canvas.Session) ([]byte, error) {
	img, err := rs.Render(ctx, s, 1.0)
	if err != nil {
		return nil, err
	}
	thumb := imaging.Fit(img, ThumbnailMaxDim, ThumbnailMaxDim, imaging.Lanczos)
	return encodePNG(thumb)
}

// RenderDownload produces the full-resolution downloadable mockup at 2x
// pixel density
func (rs *RenderService) RenderDownload(ctx context.Context, s *canvas.Session, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DownloadScale
	}
	img, err := rs.Render(ctx, s, scale)
	if err != nil {
		return nil, err
	}
	return encodePNG(img)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
