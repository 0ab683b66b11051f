package utils

import (
	"fmt"
	"image/color"
	"strings"
)

// garmentColors maps the garment color names offered in the storefront's
// color picker to their hex values. Names are stored lowercase.
var garmentColors = map[string]string{
	"white":        "#ffffff",
	"black":        "#1d1d1b",
	"navy":         "#1f2a44",
	"heather grey": "#b5b5b5",
	"charcoal":     "#3c3c3b",
	"red":          "#c8102e",
	"royal blue":   "#1f4fae",
	"sky blue":     "#9bcbeb",
	"forest green": "#1f4f2e",
	"kelly green":  "#2c9f45",
	"burgundy":     "#6e1a33",
	"purple":       "#5c2d91",
	"orange":       "#e8741e",
	"yellow":       "#f2c100",
	"pink":         "#e5a0b9",
	"sand":         "#d6c6a5",
}

// GarmentColorHex resolves a garment color name to its hex value.
// Unknown names fall through: a value that already looks like a hex color is
// returned as-is, anything else maps to white.
func GarmentColorHex(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if hex, exists := garmentColors[key]; exists {
		return hex
	}
	if strings.HasPrefix(key, "#") {
		return key
	}
	return "#ffffff"
}

// GarmentColorName returns the picker name for a hex value, or the hex
// itself when the color is not a named garment color
func GarmentColorName(hex string) string {
	needle := strings.ToLower(strings.TrimSpace(hex))
	for name, value := range garmentColors {
		if value == needle {
			return name
		}
	}
	return hex
}

// ParseHexColor parses "#rgb" or "#rrggbb" into an opaque color.
// Invalid input returns black, the same forgiving behavior the storefront's
// color inputs have.
func ParseHexColor(s string) color.RGBA {
	c := color.RGBA{A: 0xff}
	s = strings.TrimSpace(s)

	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 4:
		_, err = fmt.Sscanf(s, "#%1x%1x%1x", &c.R, &c.G, &c.B)
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length %d", len(s))
	}
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
