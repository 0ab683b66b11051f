package canvas

import (
	"image"

	"github.com/google/uuid"
)

const (
	// MinElementSize is the smallest width/height an element may have after
	// a resize. Proposals below it are rejected and the prior bounds kept.
	MinElementSize = 20.0

	// imageFitRatio: new image elements are fitted inside this fraction of
	// the print area.
	imageFitRatio = 0.8

	defaultText       = "Your Text Here"
	defaultFontSizePx = 24.0
	defaultFontFamily = "Arial"
	defaultFillColor  = "#000000"
)

// Session is one live mockup editing session: a template, a garment color,
// the ordered element list (index = z-order, later on top) and the exclusive
// selection. All mutations happen from a single goroutine; a Session is
// built per request and never shared.
type Session struct {
	template     Template
	garmentColor string
	elements     []Element
	selectedID   string // "" means no selection
	gesture      *gestureState
}

// NewSession creates an empty session for a template
func NewSession(template Template, garmentColor string) *Session {
	return &Session{
		template:     template,
		garmentColor: garmentColor,
	}
}

func (s *Session) Template() Template   { return s.template }
func (s *Session) GarmentColor() string { return s.garmentColor }
func (s *Session) SetGarmentColor(c string) {
	if c != "" {
		s.garmentColor = c
	}
}

// Elements returns the element list in z-order. The slice is a copy; the
// elements themselves are shared.
func (s *Session) Elements() []Element {
	out := make([]Element, len(s.elements))
	copy(out, s.elements)
	return out
}

// SelectedID returns the selected element id, if any
func (s *Session) SelectedID() (string, bool) {
	return s.selectedID, s.selectedID != ""
}

func (s *Session) find(id string) Element {
	for _, el := range s.elements {
		if el.ElementID() == id {
			return el
		}
	}
	return nil
}

// AddImageElement places a decoded bitmap on the canvas. The element is
// fitted inside 80% of the print area preserving aspect ratio, never scaled
// above the source's pixel dimensions, centered in the print area, appended
// on top and selected.
func (s *Session) AddImageElement(bitmap image.Image, sourceRef string) *ImageElement {
	bounds := bitmap.Bounds()
	srcW := float64(bounds.Dx())
	srcH := float64(bounds.Dy())
	pa := s.template.PrintArea

	scale := 1.0
	if srcW > 0 && srcH > 0 {
		maxW := pa.Width * imageFitRatio
		maxH := pa.Height * imageFitRatio
		scale = maxW / srcW
		if maxH/srcH < scale {
			scale = maxH / srcH
		}
		if scale > 1 {
			scale = 1 // never upscale past source pixels
		}
	}

	w := srcW * scale
	h := srcH * scale
	el := &ImageElement{
		ID:        uuid.NewString(),
		SourceRef: sourceRef,
		Bitmap:    bitmap,
		X:         pa.X + (pa.Width-w)/2,
		Y:         pa.Y + (pa.Height-h)/2,
		Width:     w,
		Height:    h,
	}
	s.elements = append(s.elements, el)
	s.selectedID = el.ID
	return el
}

// AddTextElement places a default text run centered horizontally in the
// print area at its vertical midpoint, appended on top and selected.
func (s *Session) AddTextElement() *TextElement {
	pa := s.template.PrintArea
	el := &TextElement{
		ID:         uuid.NewString(),
		Text:       defaultText,
		X:          pa.X + pa.Width/2,
		Y:          pa.Y + pa.Height/2,
		FontSizePx: defaultFontSizePx,
		FontFamily: defaultFontFamily,
		FillColor:  defaultFillColor,
	}
	s.elements = append(s.elements, el)
	s.selectedID = el.ID
	return el
}

// Select makes the element with the given id the exclusive selection.
// Returns false (selection unchanged) for unknown ids and for image
// elements whose bitmap has not decoded yet.
func (s *Session) Select(id string) bool {
	el := s.find(id)
	if el == nil {
		return false
	}
	if img, ok := el.(*ImageElement); ok && !img.Interactable() {
		return false
	}
	s.selectedID = id
	return true
}

// Deselect clears the selection
func (s *Session) Deselect() {
	s.selectedID = ""
}

// UpdateElement merges a partial attribute change into the matching element.
// A stale id is a benign no-op: async UI events race with deletion. Geometry
// is applied as one bounding box; if the proposed box has width or height
// below MinElementSize the prior box is retained in full.
func (s *Session) UpdateElement(id string, patch ElementPatch) {
	el := s.find(id)
	if el == nil {
		return
	}

	switch e := el.(type) {
	case *ImageElement:
		x, y, w, h := e.X, e.Y, e.Width, e.Height
		if patch.X != nil {
			x = *patch.X
		}
		if patch.Y != nil {
			y = *patch.Y
		}
		if patch.Width != nil {
			w = *patch.Width
		}
		if patch.Height != nil {
			h = *patch.Height
		}
		if w >= MinElementSize && h >= MinElementSize {
			e.X, e.Y, e.Width, e.Height = x, y, w, h
		}
		if patch.Rotation != nil {
			e.Rotation = *patch.Rotation
		}
	case *TextElement:
		if patch.X != nil {
			e.X = *patch.X
		}
		if patch.Y != nil {
			e.Y = *patch.Y
		}
		if patch.Rotation != nil {
			e.Rotation = *patch.Rotation
		}
		if patch.Text != nil {
			e.Text = *patch.Text
		}
		if patch.FontSizePx != nil && *patch.FontSizePx > 0 {
			e.FontSizePx = *patch.FontSizePx
		}
		if patch.FontFamily != nil && *patch.FontFamily != "" {
			e.FontFamily = *patch.FontFamily
		}
		if patch.FillColor != nil && *patch.FillColor != "" {
			e.FillColor = *patch.FillColor
		}
	}
}

// DeleteSelected removes the selected element and clears the selection.
// No-op when nothing is selected.
func (s *Session) DeleteSelected() {
	if s.selectedID == "" {
		return
	}
	for i, el := range s.elements {
		if el.ElementID() == s.selectedID {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			break
		}
	}
	s.selectedID = ""
	s.gesture = nil
}

// ClearAll empties the element list and selection. There is no undo.
func (s *Session) ClearAll() {
	s.elements = nil
	s.selectedID = ""
	s.gesture = nil
}
