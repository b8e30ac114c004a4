package reader

import (
	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
	"read-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
)

const pageMargin = int32(60)

// Page draws a plain-text book. It is the renderer handle registered for the
// open book, so the view menu drives it through SetAttribute and SetStyles.
type Page struct {
	lines  []string
	flow   string
	styles renderer.Styles

	// First visible wrapped line
	offset int
	// Lines visible in the last drawn frame, used for page turns
	visible int

	wrapped      []string
	wrappedWidth int32
	wrappedSize  int
}

// NewPage creates a paginated page for the given lines
func NewPage(lines []string) *Page {
	return &Page{
		lines:  lines,
		flow:   renderer.FlowPaginated,
		styles: renderer.GetStyles(viewsettings.Defaults()),
	}
}

// SetAttribute implements renderer.Handle. Only the flow attribute is known.
func (p *Page) SetAttribute(name, value string) {
	if name != renderer.AttrFlow {
		return
	}
	if value != renderer.FlowScrolled && value != renderer.FlowPaginated {
		return
	}
	if value == renderer.FlowPaginated && p.visible > 0 {
		// Snap to a page boundary
		p.offset -= p.offset % p.visible
	}
	p.flow = value
}

// SetStyles implements renderer.StyleSetter
func (p *Page) SetStyles(styles renderer.Styles) {
	p.styles = styles
}

// Flow returns the current layout flow
func (p *Page) Flow() string {
	return p.flow
}

// Styles returns the current styles
func (p *Page) Styles() renderer.Styles {
	return p.styles
}

// Offset returns the first visible wrapped line
func (p *Page) Offset() int {
	return p.offset
}

// Scroll moves by lines in scrolled flow
func (p *Page) Scroll(delta int) {
	if p.flow != renderer.FlowScrolled {
		return
	}
	p.setOffset(p.offset + delta)
}

// Turn moves by whole pages in paginated flow
func (p *Page) Turn(delta int) {
	if p.flow != renderer.FlowPaginated {
		return
	}
	step := max(p.visible, 1)
	p.setOffset(p.offset + delta*step)
}

func (p *Page) setOffset(offset int) {
	last := max(len(p.wrapped)-1, 0)
	p.offset = max(0, min(offset, last))
}

// Draw renders the visible text. Inverted swaps the palette for color
// inversion in dark mode.
func (p *Page) Draw(r *sdl.Renderer, fonts *ui.Fonts, width, height int32, inverted bool) error {
	fg, bg := p.styles.Foreground, p.styles.Background
	if inverted {
		fg, bg = invert(fg), invert(bg)
	}

	r.SetDrawColor(bg[0], bg[1], bg[2], 255)
	r.FillRect(&sdl.Rect{X: 0, Y: 0, W: width, H: height})

	font := fonts.Sized(p.styles.FontSize)
	if font == nil {
		return nil
	}

	textWidth := width - 2*pageMargin
	if p.wrappedWidth != textWidth || p.wrappedSize != p.styles.FontSize || p.wrapped == nil {
		p.wrapped = p.wrapped[:0]
		for _, line := range p.lines {
			p.wrapped = append(p.wrapped, ui.WrapText(line, textWidth, font)...)
		}
		p.wrappedWidth = textWidth
		p.wrappedSize = p.styles.FontSize
		p.setOffset(p.offset)
	}

	lineHeight := int32(float64(p.styles.FontSize) * p.styles.LineHeight)
	if lineHeight <= 0 {
		lineHeight = int32(p.styles.FontSize)
	}
	p.visible = int((height - 2*pageMargin) / lineHeight)

	color := sdl.Color{R: fg[0], G: fg[1], B: fg[2], A: 255}
	y := pageMargin
	for i := p.offset; i < len(p.wrapped) && i < p.offset+p.visible; i++ {
		ui.RenderText(r, p.wrapped[i], pageMargin, y, color, font)
		y += lineHeight
	}

	return nil
}

func invert(c renderer.RGB) renderer.RGB {
	return renderer.RGB{255 - c[0], 255 - c[1], 255 - c[2]}
}
