package reader

import (
	"context"
	"sync/atomic"

	"read-frame/pkg/bridge"
	"read-frame/pkg/config"
	"read-frame/pkg/display"
	"read-frame/pkg/input"
	"read-frame/pkg/library"
	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
	"read-frame/ui"
	"read-frame/widgets/fontlayout"
	librarywidget "read-frame/widgets/library"
	"read-frame/widgets/viewmenu"

	"github.com/veandco/go-sdl2/sdl"
)

// Mode is the overlay currently receiving input
type Mode int

const (
	ReadingMode Mode = iota
	MenuMode
	DialogMode
	LibraryMode
)

// Deps are the collaborators the reader screen is built from
type Deps struct {
	Config    config.Config
	Store     viewsettings.Store
	Renderers *renderer.Registry
	Surface   *display.Surface
}

// ReaderScreen manages the open book, its view menu and the dialogs
type ReaderScreen struct {
	cfg       config.Config
	store     viewsettings.Store
	renderers *renderer.Registry
	surface   *display.Surface

	// Analytics client travels in the context
	ctx    context.Context
	cancel context.CancelFunc

	// SDL2 rendering
	window   *sdl.Window
	renderer *sdl.Renderer
	fonts    *ui.Fonts

	// Open book
	books  []library.Book
	book   *library.Book
	page   *Page
	remote *renderer.RemoteHandle
	bridge *bridge.Bridge

	// UI components
	mode          Mode
	viewMenu      *viewmenu.Widget
	dialog        *fontlayout.Widget
	libraryWidget *librarywidget.Widget
	statusMessage string

	// Set by the settings watcher goroutine, consumed on the UI loop
	settingsChanged atomic.Bool

	// Input tracking
	keyState     []uint8
	mouseButtons uint32
	keyTracker   input.KeyPressTracker
	mouseTracker input.MousePressTracker
}
