package reader

import (
	"read-frame/pkg/logging"
	"read-frame/pkg/renderer"
	"read-frame/pkg/telemetry"
	"read-frame/ui"
	"read-frame/widgets/fontlayout"
	"read-frame/widgets/viewmenu"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

// activatePressed reports Enter, Space or a mouse click
func (rs *ReaderScreen) activatePressed() bool {
	keys := rs.keyTracker.AnyPressed(rs.keyState, sdl.SCANCODE_RETURN, sdl.SCANCODE_SPACE)
	left := rs.mouseTracker.IsPressed(rs.mouseButtons, sdl.ButtonLMask())
	right := rs.mouseTracker.IsPressed(rs.mouseButtons, sdl.ButtonRMask())
	return keys || left || right
}

// handleReadingInput processes input when no overlay is visible
func (rs *ReaderScreen) handleReadingInput() {
	if rs.keyTracker.AnyPressed(rs.keyState, sdl.SCANCODE_M, sdl.SCANCODE_TAB) {
		rs.openMenu()
		return
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_L) {
		rs.openLibrary()
		return
	}
	if rs.page == nil {
		return
	}

	// Down scrolls in scrolled flow and opens the menu otherwise
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_DOWN) {
		if rs.page.Flow() == renderer.FlowScrolled {
			rs.page.Scroll(1)
		} else {
			rs.openMenu()
			return
		}
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_UP) {
		rs.page.Scroll(-1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_RIGHT) {
		rs.page.Turn(1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_LEFT) {
		rs.page.Turn(-1)
	}
}

// handleMenuInput processes input while the view menu is open
func (rs *ReaderScreen) handleMenuInput() {
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_DOWN) {
		rs.viewMenu.MoveSelection(1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_UP) {
		rs.viewMenu.MoveSelection(-1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_LEFT) {
		rs.viewMenu.MoveColumn(-1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_RIGHT) {
		rs.viewMenu.MoveColumn(1)
	}

	if rs.activatePressed() {
		rs.activateMenuSelection()
	}

	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_ESCAPE) {
		rs.closeMenu()
	}
}

// activateMenuSelection runs the selected view menu control
func (rs *ReaderScreen) activateMenuSelection() {
	item, ok := rs.viewMenu.SelectedItem()
	if !ok || rs.bridge == nil {
		return
	}

	if err := viewmenu.Activate(rs.bridge, item); err != nil {
		logging.Logger().Warn("failed to save view setting", zap.Error(err))
		rs.viewMenu.SetStatusMessage("Error: Failed to save setting")
	} else {
		rs.viewMenu.SetStatusMessage("")
	}

	// Zoom styles depend on the flow, so a flow change restyles the page too
	if (item.Control == viewmenu.DarkMode || item.Control == viewmenu.ScrolledMode) && !item.Disabled {
		rs.applyTheme()
	}

	// FontLayout switches to the dialog; everything else stays in the menu
	if rs.mode == MenuMode {
		rs.viewMenu.SetItems(viewmenu.BuildItems(rs.bridge.State()))
	}
}

// handleDialogInput processes input while the font & layout dialog is open
func (rs *ReaderScreen) handleDialogInput() {
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_DOWN) {
		rs.dialog.MoveSelection(1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_UP) {
		rs.dialog.MoveSelection(-1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_LEFT) {
		rs.adjustLayout(-1)
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_RIGHT) {
		rs.adjustLayout(1)
	}

	if rs.activatePressed() && rs.dialog.Selected() == fontlayout.BackEntry {
		rs.mode = ReadingMode
	}
	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_ESCAPE) {
		rs.mode = ReadingMode
	}
}

// adjustLayout changes the selected font & layout entry
func (rs *ReaderScreen) adjustLayout(delta int) {
	if rs.bridge == nil {
		return
	}
	vs, err := fontlayout.Adjust(rs.store, rs.bridge.BookKey(), rs.dialog.Selected(), delta)
	if err != nil {
		logging.Logger().Warn("failed to save layout setting", zap.Error(err))
		rs.statusMessage = "Error: Failed to save setting"
		return
	}
	rs.dialog.SetItems(fontlayout.BuildItems(vs))
	rs.applyStyles(vs)
}

// handleLibraryInput processes input while the library is open
func (rs *ReaderScreen) handleLibraryInput() {
	if rs.keyTracker.AnyPressed(rs.keyState, sdl.SCANCODE_DOWN, sdl.SCANCODE_RIGHT) {
		rs.libraryWidget.MoveSelection(1)
	}
	if rs.keyTracker.AnyPressed(rs.keyState, sdl.SCANCODE_UP, sdl.SCANCODE_LEFT) {
		rs.libraryWidget.MoveSelection(-1)
	}

	if rs.activatePressed() {
		if card, ok := rs.libraryWidget.SelectedCard(); ok {
			for _, b := range rs.books {
				if b.Key == card.BookKey {
					rs.openBook(b)
					break
				}
			}
		}
	}

	if rs.keyTracker.IsPressed(rs.keyState, sdl.SCANCODE_ESCAPE) && rs.page != nil {
		rs.mode = ReadingMode
	}
}

// openMenu shows the view menu for the open book
func (rs *ReaderScreen) openMenu() {
	if rs.bridge == nil {
		return
	}
	rs.viewMenu.Reset()
	rs.viewMenu.SetItems(viewmenu.BuildItems(rs.bridge.State()))
	rs.mode = MenuMode
	rs.captureMenuToggle(true)
}

// closeMenu hides the view menu
func (rs *ReaderScreen) closeMenu() {
	if rs.mode == MenuMode {
		rs.mode = ReadingMode
		rs.captureMenuToggle(false)
	}
}

func (rs *ReaderScreen) captureMenuToggle(open bool) {
	rs.capture("view_menu_toggled", map[string]any{"book": rs.bridge.BookKey(), "open": open})
}

// capture sends an analytics event. Failures are logged and otherwise ignored.
func (rs *ReaderScreen) capture(event string, props map[string]any) {
	if err := telemetry.FromContext(rs.ctx).Capture(event, props); err != nil {
		logging.Logger().Debug("analytics capture failed", zap.String("event", event), zap.Error(err))
	}
}

// openDialog shows the font & layout dialog
func (rs *ReaderScreen) openDialog() {
	if rs.bridge == nil {
		return
	}
	vs, err := rs.store.Get(rs.bridge.BookKey())
	if err != nil {
		logging.Logger().Warn("failed to read view settings", zap.Error(err))
	}
	vs.Normalize()
	rs.dialog.SetItems(fontlayout.BuildItems(vs))
	rs.mode = DialogMode
}

// openLibrary rescans and shows the library
func (rs *ReaderScreen) openLibrary() {
	rs.refreshLibrary()
	rs.mode = LibraryMode
}

// drawOverlay renders the overlay for the current mode
func (rs *ReaderScreen) drawOverlay(screenWidth, screenHeight int32) error {
	if rs.fonts == nil {
		return nil
	}

	switch rs.mode {
	case MenuMode:
		if err := rs.viewMenu.Draw(rs.renderer, screenWidth, rs.fonts.Medium, rs.fonts.Small); err != nil {
			return err
		}
	case DialogMode, LibraryMode:
		rs.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
		rs.renderer.SetDrawColor(15, 23, 42, 220)
		rs.renderer.FillRect(&sdl.Rect{X: 0, Y: 0, W: screenWidth, H: screenHeight})

		uiWidth := int32(float64(screenWidth) * 0.8)
		uiHeight := int32(float64(screenHeight) * 0.8)
		uiX := (screenWidth - uiWidth) / 2
		uiY := (screenHeight - uiHeight) / 2

		if rs.mode == DialogMode {
			if err := rs.dialog.Draw(rs.renderer, uiX, uiY, uiWidth, uiHeight, rs.fonts.Large, rs.fonts.Medium, rs.fonts.Small); err != nil {
				return err
			}
		} else {
			if err := rs.libraryWidget.Draw(rs.renderer, uiX, uiY, uiWidth, uiHeight, rs.fonts.Large, rs.fonts.Small); err != nil {
				return err
			}
		}
	}

	return rs.drawStatusBar(screenWidth, screenHeight)
}

// drawStatusBar renders the book title, status and navigation hints
func (rs *ReaderScreen) drawStatusBar(screenWidth, screenHeight int32) error {
	if rs.fonts.Small == nil {
		return nil
	}

	hintColor := sdl.Color{R: 156, G: 163, B: 175, A: 255}
	hint := "M View Menu | L Library | Up/Down Scroll | Left/Right Turn Page"
	if rs.book != nil {
		hint = rs.book.Title + " | " + hint
	}
	ui.RenderText(rs.renderer, hint, 20, screenHeight-30, hintColor, rs.fonts.Small)

	if rs.statusMessage != "" {
		errColor := sdl.Color{R: 239, G: 68, B: 68, A: 255}
		ui.RenderText(rs.renderer, rs.statusMessage, 20, screenHeight-56, errColor, rs.fonts.Small)
	}
	return nil
}
