// Package bridge keeps a view menu's local toggle state in step with the
// persisted per-book ViewSettings and the book's renderer.
//
// The store is the source of truth. Local state is a cache seeded by New and
// Reseed; every toggle flushes its field back with a read-modify-write of the
// whole record and applies the matching renderer side effect. Concurrent
// writers to the same record can lose updates: the last Set wins.
package bridge

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"read-frame/pkg/display"
	"read-frame/pkg/logging"
	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
)

// Renderers looks up the renderer handle of an open book.
type Renderers interface {
	Get(bookKey string) (renderer.Handle, bool)
}

// Deps are the external collaborators of a Bridge.
type Deps struct {
	Store     viewsettings.Store
	Renderers Renderers
	Surface   *display.Surface

	// CloseMenu hides the control surface; optional.
	CloseMenu func()
	// OpenSettingsDialog shows the font & layout dialog.
	OpenSettingsDialog func()
}

// State is a snapshot of the bridge's local toggle state.
type State struct {
	BookKey   string
	ZoomLevel int
	Dark      bool
	Scrolled  bool
	Invert    bool
}

// Bridge is confined to the UI goroutine.
type Bridge struct {
	key  string
	deps Deps

	zoom     int
	dark     bool
	scrolled bool
	invert   bool
}

// New reads the record for bookKey and seeds local state from it. A failed
// read seeds defaults and is logged.
func New(bookKey string, deps Deps) *Bridge {
	b := &Bridge{key: bookKey, deps: deps}
	b.seed(b.read())
	return b
}

// BookKey returns the key of the book this bridge controls.
func (b *Bridge) BookKey() string {
	return b.key
}

// State returns the current local state.
func (b *Bridge) State() State {
	return State{
		BookKey:   b.key,
		ZoomLevel: b.zoom,
		Dark:      b.dark,
		Scrolled:  b.scrolled,
		Invert:    b.invert,
	}
}

// Mount applies every side effect once for the seeded state, as happens when
// the menu is first shown for a book.
func (b *Bridge) Mount() error {
	return errors.Join(b.flushScrolled(), b.flushInvert(), b.flushZoom())
}

// Reseed discards local state and re-reads it from the store. Call it when
// the store reports an external change.
func (b *Bridge) Reseed() {
	b.seed(b.read())
}

// ZoomIn raises the zoom level by one step, saturating at MaxZoom.
func (b *Bridge) ZoomIn() error {
	return b.setZoom(b.zoom + viewsettings.ZoomStep)
}

// ZoomOut lowers the zoom level by one step, saturating at MinZoom.
func (b *Bridge) ZoomOut() error {
	return b.setZoom(b.zoom - viewsettings.ZoomStep)
}

// ResetZoom returns the zoom level to 100%.
func (b *Bridge) ResetZoom() error {
	return b.setZoom(viewsettings.DefaultZoom)
}

// ToggleScrolled switches between scrolled and paginated flow.
func (b *Bridge) ToggleScrolled() error {
	b.scrolled = !b.scrolled
	return b.flushScrolled()
}

// ToggleDarkMode flips the dark mode flag. Theme changes are applied to the
// renderer elsewhere, so this is local state only.
func (b *Bridge) ToggleDarkMode() {
	b.dark = !b.dark
}

// ToggleInvert flips color inversion. The flag flips regardless of dark
// mode; the surface only draws it while dark mode is on.
func (b *Bridge) ToggleInvert() error {
	b.invert = !b.invert
	return b.flushInvert()
}

// OpenSecondarySettings closes the menu and opens the font & layout dialog.
func (b *Bridge) OpenSecondarySettings() {
	if b.deps.CloseMenu != nil {
		b.deps.CloseMenu()
	}
	if b.deps.OpenSettingsDialog != nil {
		b.deps.OpenSettingsDialog()
	}
}

func (b *Bridge) setZoom(level int) error {
	level = viewsettings.ClampZoom(level)
	if level == b.zoom {
		return nil
	}
	b.zoom = level
	return b.flushZoom()
}

func (b *Bridge) flushZoom() error {
	vs, err := b.update(func(vs *viewsettings.ViewSettings) {
		vs.ZoomLevel = b.zoom
	})

	// FIXME: zoom has no effect in paginated mode.
	if vs.Scrolled {
		if h, ok := b.handle(); ok {
			if ss, ok := h.(renderer.StyleSetter); ok {
				ss.SetStyles(renderer.GetStyles(vs))
			}
		}
	}
	return err
}

func (b *Bridge) flushScrolled() error {
	if h, ok := b.handle(); ok {
		h.SetAttribute(renderer.AttrFlow, renderer.Flow(b.scrolled))
	}
	_, err := b.update(func(vs *viewsettings.ViewSettings) {
		vs.Scrolled = b.scrolled
	})
	return err
}

func (b *Bridge) flushInvert() error {
	if b.deps.Surface != nil {
		b.deps.Surface.Toggle(display.ClassInvert, b.invert)
	}
	_, err := b.update(func(vs *viewsettings.ViewSettings) {
		vs.Invert = b.invert
	})
	return err
}

func (b *Bridge) handle() (renderer.Handle, bool) {
	if b.deps.Renderers == nil {
		return nil, false
	}
	return b.deps.Renderers.Get(b.key)
}

func (b *Bridge) seed(vs viewsettings.ViewSettings) {
	b.zoom = vs.ZoomLevel
	b.dark = vs.Theme == viewsettings.ThemeDark
	b.scrolled = vs.Scrolled
	b.invert = vs.Invert
}

// read returns the stored record, or defaults when it cannot be read.
func (b *Bridge) read() viewsettings.ViewSettings {
	vs, err := b.deps.Store.Get(b.key)
	if err != nil {
		logging.Logger().Warn("failed to read view settings, using defaults",
			zap.String("book", b.key), zap.Error(err))
		return viewsettings.Defaults()
	}
	vs.Normalize()
	return vs
}

// update reads the full record, applies mut and writes it back. When the
// read fails, the local cache stands in for the record. The mutated record
// is returned even if the write fails.
func (b *Bridge) update(mut func(*viewsettings.ViewSettings)) (viewsettings.ViewSettings, error) {
	vs, err := b.deps.Store.Get(b.key)
	if err != nil {
		logging.Logger().Warn("failed to read view settings before write",
			zap.String("book", b.key), zap.Error(err))
		vs = b.cached()
	}
	vs.Normalize()
	mut(&vs)

	if err := b.deps.Store.Set(b.key, vs); err != nil {
		return vs, fmt.Errorf("save view settings for %q: %w", b.key, err)
	}
	return vs, nil
}

func (b *Bridge) cached() viewsettings.ViewSettings {
	vs := viewsettings.Defaults()
	vs.ZoomLevel = b.zoom
	vs.Scrolled = b.scrolled
	vs.Invert = b.invert
	if b.dark {
		vs.Theme = viewsettings.ThemeDark
	}
	return vs
}
