package ui

import (
	"fmt"

	"github.com/veandco/go-sdl2/ttf"
)

// fontPaths lists system fonts to try, in order
var fontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Helvetica.ttc",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
}

// Fonts manages the chrome fonts plus body fonts opened on demand per size
type Fonts struct {
	Large  *ttf.Font // 32px for titles
	Medium *ttf.Font // 22px for menu items
	Small  *ttf.Font // 16px for hints

	path  string
	sized map[int]*ttf.Font
}

// LoadFonts initializes TTF and opens the first available system font
func LoadFonts() (*Fonts, error) {
	if err := ttf.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize TTF: %v", err)
	}

	fonts := &Fonts{sized: make(map[int]*ttf.Font)}
	for _, path := range fontPaths {
		f, err := ttf.OpenFont(path, 32)
		if err != nil {
			continue
		}
		fonts.path = path
		fonts.Large = f
		break
	}
	if fonts.path == "" {
		return fonts, fmt.Errorf("no usable system font found")
	}

	fonts.Medium, _ = ttf.OpenFont(fonts.path, 22)
	fonts.Small, _ = ttf.OpenFont(fonts.path, 16)
	return fonts, nil
}

// Sized returns the body font for a pixel size, opening it on first use
func (f *Fonts) Sized(px int) *ttf.Font {
	if f == nil || f.path == "" || px <= 0 {
		return nil
	}
	if font, ok := f.sized[px]; ok {
		return font
	}

	font, err := ttf.OpenFont(f.path, px)
	if err != nil {
		return nil
	}
	f.sized[px] = font
	return font
}

// Close cleans up font resources
func (f *Fonts) Close() {
	for _, font := range []*ttf.Font{f.Large, f.Medium, f.Small} {
		if font != nil {
			font.Close()
		}
	}
	for px, font := range f.sized {
		font.Close()
		delete(f.sized, px)
	}
	ttf.Quit()
}
