package canvas

import "errors"

// ErrUnknownTemplateKind is returned when a template key is not in the registry
var ErrUnknownTemplateKind = errors.New("unknown template kind")

// TemplateCategory groups templates for the storefront's product picker
type TemplateCategory string

const (
	CategoryApparel   TemplateCategory = "apparel"
	CategoryAccessory TemplateCategory = "accessory"
)

// Rect is an axis-aligned rectangle in canvas-pixel units
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Template describes one printable product surface: the canvas dimensions,
// the print-safe area where elements are placed, and the background image
// shown behind the garment color overlay
type Template struct {
	Key                string           `json:"key"`
	DisplayName        string           `json:"displayName"`
	Category           TemplateCategory `json:"category"`
	CanvasWidth        float64          `json:"canvasWidth"`
	CanvasHeight       float64          `json:"canvasHeight"`
	PrintArea          Rect             `json:"printArea"`
	BackgroundImageRef string           `json:"backgroundImageRef"`
}

// templates is the static registry. Order matters: ListTemplates and
// ListTemplatesByCategory return templates in declaration order.
var templates = []Template{
	{
		Key:                "tshirt_front",
		DisplayName:        "T-Shirt (Front)",
		Category:           CategoryApparel,
		CanvasWidth:        500,
		CanvasHeight:       500,
		PrintArea:          Rect{X: 150, Y: 120, Width: 200, Height: 250},
		BackgroundImageRef: "/static/templates/tshirt_front.png",
	},
	{
		Key:                "tshirt_back",
		DisplayName:        "T-Shirt (Back)",
		Category:           CategoryApparel,
		CanvasWidth:        500,
		CanvasHeight:       500,
		PrintArea:          Rect{X: 150, Y: 100, Width: 200, Height: 280},
		BackgroundImageRef: "/static/templates/tshirt_back.png",
	},
	{
		Key:                "hoodie_front",
		DisplayName:        "Hoodie (Front)",
		Category:           CategoryApparel,
		CanvasWidth:        500,
		CanvasHeight:       500,
		PrintArea:          Rect{X: 160, Y: 150, Width: 180, Height: 200},
		BackgroundImageRef: "/static/templates/hoodie_front.png",
	},
	{
		Key:                "sweatshirt_front",
		DisplayName:        "Sweatshirt (Front)",
		Category:           CategoryApparel,
		CanvasWidth:        500,
		CanvasHeight:       500,
		PrintArea:          Rect{X: 155, Y: 135, Width: 190, Height: 230},
		BackgroundImageRef: "/static/templates/sweatshirt_front.png",
	},
	{
		Key:                "tote_front",
		DisplayName:        "Tote Bag",
		Category:           CategoryAccessory,
		CanvasWidth:        450,
		CanvasHeight:       500,
		PrintArea:          Rect{X: 115, Y: 160, Width: 220, Height: 240},
		BackgroundImageRef: "/static/templates/tote_front.png",
	},
	{
		Key:                "cap_front",
		DisplayName:        "Cap",
		Category:           CategoryAccessory,
		CanvasWidth:        500,
		CanvasHeight:       400,
		PrintArea:          Rect{X: 185, Y: 120, Width: 130, Height: 90},
		BackgroundImageRef: "/static/templates/cap_front.png",
	},
}

// LookupTemplate returns the template for the given key
func LookupTemplate(key string) (Template, error) {
	for _, t := range templates {
		if t.Key == key {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplateKind
}

// ListTemplates returns all templates in declaration order
func ListTemplates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// ListTemplatesByCategory returns templates of one category in declaration order
func ListTemplatesByCategory(category TemplateCategory) []Template {
	var out []Template
	for _, t := range templates {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
