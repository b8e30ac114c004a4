package ui

import "github.com/veandco/go-sdl2/sdl"

// Lerp interpolates between two colors, t in [0,1]
func Lerp(a, b [3]uint8, t float64) [3]uint8 {
	var out [3]uint8
	for i := range out {
		out[i] = uint8(float64(a[i])*(1-t) + float64(b[i])*t)
	}
	return out
}

// DrawGradientRect draws a vertical gradient rectangle
func DrawGradientRect(renderer *sdl.Renderer, x, y, width, height int32, startColor, endColor [3]uint8) {
	if height <= 0 {
		return
	}
	for i := int32(0); i < height; i++ {
		t := 0.0
		if height > 1 {
			t = float64(i) / float64(height-1)
		}
		c := Lerp(startColor, endColor, t)
		renderer.SetDrawColor(c[0], c[1], c[2], 255)
		renderer.DrawLine(x, y+i, x+width-1, y+i)
	}
}
