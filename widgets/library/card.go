package library

import (
	"fmt"
	"hash/fnv"

	"read-frame/pkg/library"
	"read-frame/ui"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var palettes = [][2][3]uint8{
	{{41, 98, 255}, {13, 71, 161}},
	{{156, 39, 176}, {74, 20, 140}},
	{{99, 102, 241}, {67, 56, 202}},
	{{16, 185, 129}, {6, 95, 70}},
	{{245, 158, 11}, {180, 83, 9}},
}

// CardForBook maps a library book to a card. The gradient is picked from the
// book key so a book keeps its colors between runs.
func CardForBook(b library.Book) Card {
	h := fnv.New32a()
	h.Write([]byte(b.Key))
	p := palettes[h.Sum32()%uint32(len(palettes))]

	return Card{
		BookKey:    b.Key,
		Title:      b.Title,
		Subtitle:   fmt.Sprintf("%d KB", (b.Size+1023)/1024),
		ColorStart: p[0],
		ColorEnd:   p[1],
	}
}

// DrawCard renders a single book card with gradient
func DrawCard(renderer *sdl.Renderer, card Card, x, y, width, height int32, selected bool, largeFont, smallFont *ttf.Font) error {
	ui.DrawGradientRect(renderer, x, y, width, height, card.ColorStart, card.ColorEnd)

	if selected {
		renderer.SetDrawColor(255, 255, 255, 255)
		for i := 0; i < 3; i++ {
			renderer.DrawRect(&sdl.Rect{X: x - int32(i), Y: y - int32(i), W: width + int32(i*2), H: height + int32(i*2)})
		}
	}

	if largeFont != nil {
		titleColor := sdl.Color{R: 255, G: 255, B: 255, A: 255}
		ui.RenderText(renderer, card.Title, x+30, y+30, titleColor, largeFont)
	}

	if smallFont != nil {
		descColor := sdl.Color{R: 255, G: 255, B: 255, A: 200}
		ui.RenderText(renderer, card.Subtitle, x+30, y+height-60, descColor, smallFont)
	}

	return nil
}
