package viewmenu

import (
	"read-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

const (
	menuWidth  = int32(360)
	rowHeight  = int32(48)
	menuMargin = int32(12)
)

// Widget manages view menu display and navigation
type Widget struct {
	items         []Item
	row           int
	col           int
	statusMessage string
}

// NewWidget creates a new view menu widget
func NewWidget() *Widget {
	w := &Widget{}
	w.Reset()
	return w
}

// SetItems updates the menu items, keeping the selection
func (w *Widget) SetItems(items []Item) {
	w.items = items
}

// Items returns the current items
func (w *Widget) Items() []Item {
	return w.items
}

// Reset moves the selection back to the first row
func (w *Widget) Reset() {
	w.row = 0
	w.col = 1
	w.statusMessage = ""
}

// Selected returns the selected item index
func (w *Widget) Selected() int {
	r := rows[w.row]
	return r[min(w.col, len(r)-1)]
}

// SelectedItem returns the selected item
func (w *Widget) SelectedItem() (Item, bool) {
	i := w.Selected()
	if i >= 0 && i < len(w.items) {
		return w.items[i], true
	}
	return Item{}, false
}

// MoveSelection moves between rows with wrapping
func (w *Widget) MoveSelection(delta int) {
	w.row += delta
	if w.row < 0 {
		w.row = len(rows) - 1
	} else if w.row >= len(rows) {
		w.row = 0
	}
	if w.row == 0 && w.col >= len(rows[0]) {
		w.col = 1
	}
}

// MoveColumn moves within the zoom row without wrapping
func (w *Widget) MoveColumn(delta int) {
	r := rows[w.row]
	w.col = max(0, min(min(w.col, len(r)-1)+delta, len(r)-1))
}

// SetStatusMessage sets a status message to display
func (w *Widget) SetStatusMessage(message string) {
	w.statusMessage = message
}

// StatusMessage returns the current status message
func (w *Widget) StatusMessage() string {
	return w.statusMessage
}

// Height returns the drawn height of the menu
func (w *Widget) Height() int32 {
	h := int32(len(rows))*rowHeight + 2*menuMargin
	if w.statusMessage != "" {
		h += rowHeight / 2
	}
	return h
}

// Draw renders the menu anchored to the top right corner of the screen
func (w *Widget) Draw(renderer *sdl.Renderer, screenWidth int32, mediumFont, smallFont *ttf.Font) error {
	x := screenWidth - menuWidth - menuMargin
	y := menuMargin

	// Panel with border
	renderer.SetDrawColor(255, 255, 255, 245)
	renderer.FillRect(&sdl.Rect{X: x, Y: y, W: menuWidth, H: w.Height()})
	renderer.SetDrawColor(203, 213, 225, 255)
	renderer.DrawRect(&sdl.Rect{X: x, Y: y, W: menuWidth, H: w.Height()})

	selected := w.Selected()
	for rowIdx, r := range rows {
		rowY := y + menuMargin + int32(rowIdx)*rowHeight
		cellWidth := (menuWidth - 2*menuMargin) / int32(len(r))

		// Separators before Font & Layout and before the theme toggles
		if rowIdx == 1 || rowIdx == 3 {
			renderer.SetDrawColor(226, 232, 240, 255)
			renderer.DrawLine(x+menuMargin, rowY, x+menuWidth-menuMargin, rowY)
		}

		for colIdx, itemIdx := range r {
			if itemIdx >= len(w.items) {
				continue
			}
			item := w.items[itemIdx]
			cellX := x + menuMargin + int32(colIdx)*cellWidth

			if itemIdx == selected {
				renderer.SetDrawColor(241, 245, 249, 255)
				renderer.FillRect(&sdl.Rect{X: cellX, Y: rowY + 2, W: cellWidth, H: rowHeight - 4})
			}

			textColor := sdl.Color{R: 15, G: 23, B: 42, A: 255}
			if item.Disabled {
				textColor = sdl.Color{R: 156, G: 163, B: 175, A: 255}
			}
			if mediumFont != nil {
				ui.RenderText(renderer, item.Label(), cellX+12, rowY+12, textColor, mediumFont)
			}
			if item.Hint != "" && smallFont != nil {
				hintColor := sdl.Color{R: 156, G: 163, B: 175, A: 255}
				ui.RenderText(renderer, item.Hint, cellX+cellWidth-90, rowY+16, hintColor, smallFont)
			}
		}
	}

	if w.statusMessage != "" && smallFont != nil {
		statusColor := sdl.Color{R: 34, G: 197, B: 94, A: 255}
		if len(w.statusMessage) > 5 && w.statusMessage[:5] == "Error" {
			statusColor = sdl.Color{R: 239, G: 68, B: 68, A: 255}
		}
		statusY := y + menuMargin + int32(len(rows))*rowHeight
		ui.RenderText(renderer, w.statusMessage, x+menuMargin+12, statusY, statusColor, smallFont)
	}

	return nil
}
