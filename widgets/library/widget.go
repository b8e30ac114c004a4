package library

import (
	"read-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Widget manages book cards display and selection
type Widget struct {
	cards    []Card
	selected int
}

// NewWidget creates a new library widget
func NewWidget() *Widget {
	return &Widget{
		cards:    []Card{},
		selected: 0,
	}
}

// SetCards updates the book cards
func (w *Widget) SetCards(cards []Card) {
	w.cards = cards
	if w.selected >= len(cards) {
		w.selected = 0
	}
}

// Cards returns the current cards
func (w *Widget) Cards() []Card {
	return w.cards
}

// Selected returns the selected card index
func (w *Widget) Selected() int {
	return w.selected
}

// SelectedCard returns the selected card
func (w *Widget) SelectedCard() (Card, bool) {
	if w.selected >= 0 && w.selected < len(w.cards) {
		return w.cards[w.selected], true
	}
	return Card{}, false
}

// MoveSelection moves selection with wrapping
func (w *Widget) MoveSelection(delta int) {
	if len(w.cards) == 0 {
		return
	}

	w.selected += delta
	if w.selected < 0 {
		w.selected = len(w.cards) - 1
	} else if w.selected >= len(w.cards) {
		w.selected = 0
	}
}

// Draw renders the library
func (w *Widget) Draw(renderer *sdl.Renderer, x, y, width, height int32, largeFont, smallFont *ttf.Font) error {
	renderer.SetDrawColor(30, 41, 59, 255)
	renderer.FillRect(&sdl.Rect{X: x, Y: y, W: width, H: height})

	if largeFont != nil {
		titleColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
		if err := ui.RenderText(renderer, "Library", x+40, y+20, titleColor, largeFont); err == nil {
			if smallFont != nil {
				descColor := sdl.Color{R: 148, G: 163, B: 184, A: 255}
				ui.RenderText(renderer, "Select a book to start reading", x+40, y+60, descColor, smallFont)
			}
		}
	}

	if len(w.cards) == 0 && smallFont != nil {
		emptyColor := sdl.Color{R: 148, G: 163, B: 184, A: 255}
		ui.RenderText(renderer, "No .txt books found in the library directory", x+40, y+120, emptyColor, smallFont)
		return nil
	}

	cardStartY := y + 120
	cardSpacing := int32(20)
	cardHeight := int32(160)
	cardsPerRow := int32(2)
	cardWidth := (width - 80 - cardSpacing) / cardsPerRow

	for i, card := range w.cards {
		row := int32(i) / cardsPerRow
		col := int32(i) % cardsPerRow

		cardX := x + 40 + col*(cardWidth+cardSpacing)
		cardY := cardStartY + row*(cardHeight+cardSpacing)

		// Skip if card would be below visible area
		if cardY+cardHeight > y+height {
			break
		}

		if err := DrawCard(renderer, card, cardX, cardY, cardWidth, cardHeight, i == w.selected, largeFont, smallFont); err != nil {
			continue
		}
	}

	return nil
}
