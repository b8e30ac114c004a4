package viewmenu

// Control identifies one interactive control of the view menu
type Control int

const (
	ZoomOut Control = iota
	ZoomReset
	ZoomIn
	FontLayout
	ScrolledMode
	DarkMode
	InvertColors
)

// Shortcut hints shown next to their controls. Dispatch happens elsewhere.
const (
	FontLayoutHint   = "Shift+F"
	ScrolledModeHint = "Shift+J"
)

// Item represents a view menu entry
type Item struct {
	Control  Control
	Title    string
	Hint     string
	Checked  bool
	Disabled bool
}

// rows groups item indexes the way they are laid out: the three zoom
// controls share the first row.
var rows = [][]int{{0, 1, 2}, {3}, {4}, {5}, {6}}
