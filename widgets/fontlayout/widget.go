package fontlayout

import (
	"fmt"
	"math"

	"read-frame/pkg/viewsettings"
	"read-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Font size and line height bounds
const (
	MinFontSize    = 12
	MaxFontSize    = 32
	MinLineHeight  = 1.0
	MaxLineHeight  = 2.4
	LineHeightStep = 0.2
)

// Entry indexes
const (
	FontSizeEntry = iota
	LineHeightEntry
	BackEntry
)

// Item represents a dialog row
type Item struct {
	Title string
	Value string
}

// BuildItems creates the dialog rows for a settings record
func BuildItems(vs viewsettings.ViewSettings) []Item {
	return []Item{
		{Title: "Font Size", Value: fmt.Sprintf("%dpx", vs.DefaultFontSize)},
		{Title: "Line Height", Value: fmt.Sprintf("%.1f", vs.LineHeight)},
		{Title: "Back", Value: ""},
	}
}

// Adjust changes the entry at index by delta steps with a read-modify-write
// of the whole record, and returns the record that was written
func Adjust(store viewsettings.Store, bookKey string, index, delta int) (viewsettings.ViewSettings, error) {
	vs, err := store.Get(bookKey)
	if err != nil {
		return vs, fmt.Errorf("read view settings: %w", err)
	}
	vs.Normalize()

	switch index {
	case FontSizeEntry:
		vs.DefaultFontSize = max(MinFontSize, min(vs.DefaultFontSize+delta, MaxFontSize))
	case LineHeightEntry:
		lh := vs.LineHeight + float64(delta)*LineHeightStep
		lh = math.Round(lh*10) / 10
		vs.LineHeight = math.Max(MinLineHeight, math.Min(lh, MaxLineHeight))
	default:
		return vs, nil
	}

	if err := store.Set(bookKey, vs); err != nil {
		return vs, fmt.Errorf("save view settings: %w", err)
	}
	return vs, nil
}

// Widget manages the font & layout dialog
type Widget struct {
	items    []Item
	selected int
}

// NewWidget creates a new dialog widget
func NewWidget() *Widget {
	return &Widget{}
}

// SetItems updates the dialog rows
func (w *Widget) SetItems(items []Item) {
	w.items = items
	if w.selected >= len(items) {
		w.selected = 0
	}
}

// Selected returns the selected row index
func (w *Widget) Selected() int {
	return w.selected
}

// MoveSelection moves selection up or down with wrapping
func (w *Widget) MoveSelection(delta int) {
	if len(w.items) == 0 {
		return
	}

	w.selected += delta
	if w.selected < 0 {
		w.selected = len(w.items) - 1
	} else if w.selected >= len(w.items) {
		w.selected = 0
	}
}

// Draw renders the dialog
func (w *Widget) Draw(renderer *sdl.Renderer, x, y, width, height int32, largeFont, mediumFont, smallFont *ttf.Font) error {
	renderer.SetDrawColor(30, 41, 59, 255)
	renderer.FillRect(&sdl.Rect{X: x, Y: y, W: width, H: height})

	if largeFont != nil {
		titleColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
		ui.RenderText(renderer, "Font & Layout", x+40, y+20, titleColor, largeFont)
	}

	itemHeight := int32(60)
	itemsStartY := y + 80
	for i, item := range w.items {
		itemY := itemsStartY + int32(i)*itemHeight
		if itemY+itemHeight > y+height {
			break
		}

		if i == w.selected {
			renderer.SetDrawColor(51, 65, 85, 255)
			renderer.FillRect(&sdl.Rect{X: x + 20, Y: itemY, W: width - 40, H: itemHeight})
		}

		if mediumFont != nil {
			color := sdl.Color{R: 255, G: 255, B: 255, A: 255}
			ui.RenderText(renderer, item.Title, x+40, itemY+10, color, mediumFont)

			if smallFont != nil && item.Value != "" {
				valueColor := sdl.Color{R: 148, G: 163, B: 184, A: 255}
				ui.RenderText(renderer, item.Value, x+40, itemY+35, valueColor, smallFont)
			}
		}
	}

	if smallFont != nil {
		hintColor := sdl.Color{R: 156, G: 163, B: 175, A: 255}
		ui.RenderText(renderer, "Up/Down Select | Left/Right Adjust | ESC Close", x+40, y+height-30, hintColor, smallFont)
	}

	return nil
}
