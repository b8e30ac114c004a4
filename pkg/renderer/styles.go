package renderer

import (
	"fmt"
	"strings"

	"read-frame/pkg/viewsettings"
)

// RGB is an opaque color.
type RGB [3]uint8

// Hex formats the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Styles is the style set injected into a renderer.
type Styles struct {
	FontSize   int     `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	Foreground RGB     `json:"foreground"`
	Background RGB     `json:"background"`
	Invert     bool    `json:"invert"`
}

var (
	lightForeground = RGB{33, 33, 33}
	lightBackground = RGB{255, 255, 255}
	darkForeground  = RGB{224, 224, 224}
	darkBackground  = RGB{34, 34, 34}
)

// GetStyles derives the renderer styles for a settings record. The zoom
// level scales the default font size.
func GetStyles(s viewsettings.ViewSettings) Styles {
	s.Normalize()

	st := Styles{
		FontSize:   s.DefaultFontSize * s.ZoomLevel / 100,
		LineHeight: s.LineHeight,
		Foreground: lightForeground,
		Background: lightBackground,
	}
	if s.Theme == viewsettings.ThemeDark {
		st.Foreground = darkForeground
		st.Background = darkBackground
		st.Invert = s.Invert
	}
	return st
}

// CSS renders the styles as a stylesheet for web based renderers.
func (s Styles) CSS() string {
	var b strings.Builder
	b.WriteString("html, body {\n")
	fmt.Fprintf(&b, "  font-size: %dpx;\n", s.FontSize)
	fmt.Fprintf(&b, "  line-height: %.2f;\n", s.LineHeight)
	fmt.Fprintf(&b, "  color: %s;\n", s.Foreground.Hex())
	fmt.Fprintf(&b, "  background-color: %s;\n", s.Background.Hex())
	if s.Invert {
		b.WriteString("  filter: invert(100%);\n")
	}
	b.WriteString("}\n")
	return b.String()
}
