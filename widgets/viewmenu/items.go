package viewmenu

import (
	"fmt"

	"read-frame/pkg/bridge"
)

// BuildItems creates the seven view menu items for the bridge state
func BuildItems(st bridge.State) []Item {
	zoomDisabled := !st.Scrolled

	themeTitle := "Light Mode"
	if st.Dark {
		themeTitle = "Dark Mode"
	}

	return []Item{
		{Control: ZoomOut, Title: "-", Disabled: zoomDisabled},
		{Control: ZoomReset, Title: fmt.Sprintf("%d%%", st.ZoomLevel), Disabled: zoomDisabled},
		{Control: ZoomIn, Title: "+", Disabled: zoomDisabled},
		{Control: FontLayout, Title: "Font & Layout", Hint: FontLayoutHint},
		{Control: ScrolledMode, Title: "Scrolled Mode", Hint: ScrolledModeHint, Checked: st.Scrolled},
		{Control: DarkMode, Title: themeTitle, Checked: st.Dark},
		{Control: InvertColors, Title: "Invert Colors in Dark Mode", Checked: st.Invert, Disabled: !st.Dark},
	}
}

// Label returns the display text of an item, with a check mark when set
func (it Item) Label() string {
	switch it.Control {
	case ScrolledMode, InvertColors:
		if it.Checked {
			return "✓ " + it.Title
		}
	case DarkMode:
		if it.Checked {
			return "☾ " + it.Title
		}
		return "☀ " + it.Title
	}
	return it.Title
}

// Activate runs the bridge operation behind it. Disabled items do nothing.
func Activate(b *bridge.Bridge, it Item) error {
	if it.Disabled {
		return nil
	}

	switch it.Control {
	case ZoomOut:
		return b.ZoomOut()
	case ZoomReset:
		return b.ResetZoom()
	case ZoomIn:
		return b.ZoomIn()
	case FontLayout:
		b.OpenSecondarySettings()
	case ScrolledMode:
		return b.ToggleScrolled()
	case DarkMode:
		b.ToggleDarkMode()
	case InvertColors:
		return b.ToggleInvert()
	}
	return nil
}
