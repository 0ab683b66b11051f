package canvas

import "image"

// ElementKind is the discriminant of the element union
type ElementKind string

const (
	KindImage ElementKind = "image"
	KindText  ElementKind = "text"
)

// Element is a user-placed design element. The two concrete kinds are
// ImageElement and TextElement; renderers and serializers switch on Kind()
// so a new kind fails loudly everywhere it matters.
type Element interface {
	ElementID() string
	Kind() ElementKind
}

// ImageElement is a placed bitmap. SourceRef is the original reference
// (URL or data URI) and is what gets persisted; Bitmap holds the decoded
// pixels and is nil while decoding is pending or failed. An element with a
// nil Bitmap is inert: it cannot be selected or targeted by gestures.
type ImageElement struct {
	ID        string
	SourceRef string
	Bitmap    image.Image
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Rotation  float64 // degrees, clockwise
}

func (e *ImageElement) ElementID() string { return e.ID }
func (e *ImageElement) Kind() ElementKind { return KindImage }

// Interactable reports whether the bitmap has been decoded
func (e *ImageElement) Interactable() bool { return e.Bitmap != nil }

// TextElement is a placed text run. X/Y is the anchor point at the center
// of the rendered string.
type TextElement struct {
	ID         string
	Text       string
	X          float64
	Y          float64
	FontSizePx float64
	FontFamily string
	FillColor  string // #rrggbb
	Rotation   float64
}

func (e *TextElement) ElementID() string { return e.ID }
func (e *TextElement) Kind() ElementKind { return KindText }

// ElementPatch carries a partial attribute update. Nil fields are left
// unchanged. Geometry fields are applied as one bounding box so the resize
// clamp can accept or reject the whole proposal.
type ElementPatch struct {
	X          *float64
	Y          *float64
	Width      *float64
	Height     *float64
	Rotation   *float64
	Text       *string
	FontSizePx *float64
	FontFamily *string
	FillColor  *string
}

func float64Ptr(v float64) *float64 { return &v }
