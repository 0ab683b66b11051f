package canvas

import (
	"context"
	"fmt"
	"image"
	"log"

	"mockup-studio/models"
)

// BitmapDecoder resolves an image source reference (URL or data URI) into
// decoded pixels. Implementations live in the service layer.
type BitmapDecoder interface {
	Decode(ctx context.Context, sourceRef string) (image.Image, error)
}

// Serialize converts the live session into a persistable document. Image
// elements carry only their original source reference, never decoded pixel
// buffers, so the document stays lightweight and round-trippable.
func Serialize(s *Session, name string) models.CompositionDocument {
	doc := models.CompositionDocument{
		Name:         name,
		TemplateKey:  s.template.Key,
		GarmentColor: s.garmentColor,
		Elements:     make([]models.CompositionElement, 0, len(s.elements)),
	}
	for _, el := range s.elements {
		switch e := el.(type) {
		case *ImageElement:
			doc.Elements = append(doc.Elements, models.CompositionElement{
				ID:              e.ID,
				Kind:            string(KindImage),
				X:               e.X,
				Y:               e.Y,
				Width:           e.Width,
				Height:          e.Height,
				RotationDegrees: e.Rotation,
				ImageRef:        e.SourceRef,
			})
		case *TextElement:
			doc.Elements = append(doc.Elements, models.CompositionElement{
				ID:              e.ID,
				Kind:            string(KindText),
				X:               e.X,
				Y:               e.Y,
				RotationDegrees: e.Rotation,
				Text:            e.Text,
				FontSizePx:      e.FontSizePx,
				FontFamily:      e.FontFamily,
				FillColor:       e.FillColor,
			})
		}
	}
	return doc
}

// Deserialize reconstructs a session from a persisted document. Image
// elements are decoded through the given decoder; an element whose decode
// fails stays in the list but inert (nil bitmap, not selectable) so the rest
// of the composition remains editable. A nil decoder leaves every image
// element inert.
func Deserialize(ctx context.Context, doc models.CompositionDocument, decoder BitmapDecoder) (*Session, error) {
	tpl, err := LookupTemplate(doc.TemplateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize composition: %w", err)
	}

	s := NewSession(tpl, doc.GarmentColor)
	for _, el := range doc.Elements {
		switch ElementKind(el.Kind) {
		case KindImage:
			img := &ImageElement{
				ID:        el.ID,
				SourceRef: el.ImageRef,
				X:         el.X,
				Y:         el.Y,
				Width:     el.Width,
				Height:    el.Height,
				Rotation:  el.RotationDegrees,
			}
			if decoder != nil {
				bitmap, decErr := decoder.Decode(ctx, el.ImageRef)
				if decErr != nil {
					log.Printf("⚠️  Deserialize: image element %s left inert, decode failed: %v", el.ID, decErr)
				} else {
					img.Bitmap = bitmap
				}
			}
			s.elements = append(s.elements, img)
		case KindText:
			s.elements = append(s.elements, &TextElement{
				ID:         el.ID,
				Text:       el.Text,
				X:          el.X,
				Y:          el.Y,
				FontSizePx: el.FontSizePx,
				FontFamily: el.FontFamily,
				FillColor:  el.FillColor,
				Rotation:   el.RotationDegrees,
			})
		default:
			return nil, fmt.Errorf("failed to deserialize composition: unknown element kind %q", el.Kind)
		}
	}
	return s, nil
}
