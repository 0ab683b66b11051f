package models

// CompositionElement is one serialized design element. Kind is "image" or
// "text"; kind-specific fields are zero for the other kind.
type CompositionElement struct {
	ID              string  `json:"id"`
	Kind            string  `json:"kind"`
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width,omitempty"`
	Height          float64 `json:"height,omitempty"`
	RotationDegrees float64 `json:"rotationDegrees"`
	ImageRef        string  `json:"imageRef,omitempty"`
	Text            string  `json:"text,omitempty"`
	FontSizePx      float64 `json:"fontSizePx,omitempty"`
	FontFamily      string  `json:"fontFamily,omitempty"`
	FillColor       string  `json:"fillColor,omitempty"`
}

// CompositionDocument is the persisted form of one design session.
// Elements are ordered: index is z-order, later entries draw on top.
// Example:
// {
//   "id": "7f2b1a6e-...",
//   "name": "Summer tour tee",
//   "templateKey": "tshirt_front",
//   "garmentColor": "#1f2a44",
//   "elements": [
//     {"id": "a1", "kind": "image", "x": 170, "y": 140, "width": 160, "height": 80,
//      "rotationDegrees": 0, "imageRef": "https://cdn.example.com/artwork/skull.png"},
//     {"id": "a2", "kind": "text", "x": 250, "y": 245, "rotationDegrees": 0,
//      "text": "Your Text Here", "fontSizePx": 24, "fontFamily": "Arial", "fillColor": "#000000"}
//   ]
// }
type CompositionDocument struct {
	ID           string               `json:"id,omitempty"`
	Name         string               `json:"name"`
	TemplateKey  string               `json:"templateKey"`
	GarmentColor string               `json:"garmentColor"`
	Elements     []CompositionElement `json:"elements"`
	ThumbnailRef string               `json:"thumbnailRef,omitempty"`
}

// CompositionSummary is the list-view projection of a saved composition,
// without the element payload
type CompositionSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TemplateKey  string `json:"templateKey"`
	GarmentColor string `json:"garmentColor"`
	ThumbnailRef string `json:"thumbnailRef,omitempty"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// SaveCompositionResponse is returned after a save/upsert
type SaveCompositionResponse struct {
	ID           string `json:"id"`
	ThumbnailRef string `json:"thumbnailRef"`
}
