package reader

import (
	"context"
	"time"

	"read-frame/pkg/bridge"
	"read-frame/pkg/input"
	"read-frame/pkg/library"
	"read-frame/pkg/logging"
	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
	"read-frame/ui"
	"read-frame/widgets/fontlayout"
	librarywidget "read-frame/widgets/library"
	"read-frame/widgets/viewmenu"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
)

// settingsWatcher is implemented by stores that can report external changes
type settingsWatcher interface {
	Watch(ctx context.Context, onChange func()) error
}

// NewReaderScreen creates the reader screen and opens the first book of the
// library, if any. ctx carries the analytics client.
func NewReaderScreen(ctx context.Context, window *sdl.Window, r *sdl.Renderer, deps Deps) *ReaderScreen {
	ctx, cancel := context.WithCancel(ctx)

	rs := &ReaderScreen{
		cfg:           deps.Config,
		store:         deps.Store,
		renderers:     deps.Renderers,
		surface:       deps.Surface,
		ctx:           ctx,
		cancel:        cancel,
		window:        window,
		renderer:      r,
		viewMenu:      viewmenu.NewWidget(),
		dialog:        fontlayout.NewWidget(),
		libraryWidget: librarywidget.NewWidget(),
		keyTracker:    input.NewKeyPressTracker(),
		mouseTracker:  input.NewMousePressTracker(),
	}

	fonts, err := ui.LoadFonts()
	if err != nil {
		logging.Logger().Warn("failed to initialize fonts", zap.Error(err))
	}
	rs.fonts = fonts

	if w, ok := deps.Store.(settingsWatcher); ok {
		if err := w.Watch(ctx, func() { rs.settingsChanged.Store(true) }); err != nil {
			logging.Logger().Warn("failed to watch view settings", zap.Error(err))
		}
	}

	rs.refreshLibrary()
	if len(rs.books) > 0 {
		rs.openBook(rs.books[0])
	} else {
		rs.mode = LibraryMode
	}

	return rs
}

// Update handles SDL2 input and updates screen state
func (rs *ReaderScreen) Update() error {
	rs.keyState = sdl.GetKeyboardState()
	_, _, buttons := sdl.GetMouseState()
	rs.mouseButtons = buttons

	if rs.settingsChanged.Swap(false) {
		rs.reloadSettings()
	}

	switch rs.mode {
	case MenuMode:
		rs.handleMenuInput()
	case DialogMode:
		rs.handleDialogInput()
	case LibraryMode:
		rs.handleLibraryInput()
	default:
		rs.handleReadingInput()
	}
	return nil
}

// Draw renders the complete frame using SDL2
func (rs *ReaderScreen) Draw() error {
	w, h := rs.window.GetSize()

	rs.renderer.SetDrawColor(0, 0, 0, 255)
	rs.renderer.Clear()

	if rs.page != nil {
		dark := rs.bridge != nil && rs.bridge.State().Dark
		if err := rs.page.Draw(rs.renderer, rs.fonts, w, h, rs.surface.Inverted(dark)); err != nil {
			return err
		}
	}

	if err := rs.drawOverlay(w, h); err != nil {
		return err
	}

	rs.renderer.Present()
	return nil
}

// refreshLibrary rescans the library directory
func (rs *ReaderScreen) refreshLibrary() {
	books, err := library.Scan(rs.cfg.LibraryDir)
	if err != nil {
		logging.Logger().Warn("failed to scan library", zap.String("dir", rs.cfg.LibraryDir), zap.Error(err))
		rs.statusMessage = "Error: library not readable"
	}
	rs.books = books

	cards := make([]librarywidget.Card, len(books))
	for i, b := range books {
		cards[i] = librarywidget.CardForBook(b)
	}
	rs.libraryWidget.SetCards(cards)
}

// openBook loads a book, registers its renderer handle and binds a new
// settings bridge to it
func (rs *ReaderScreen) openBook(b library.Book) {
	rs.closeBook()

	lines, err := library.ReadLines(b.Path)
	if err != nil {
		logging.Logger().Warn("failed to open book", zap.String("book", b.Key), zap.Error(err))
		rs.statusMessage = "Error: could not open " + b.Title
		return
	}

	book := b
	rs.book = &book
	rs.page = NewPage(lines)

	var handle renderer.Handle = rs.page
	if rs.cfg.RemoteRendererURL != "" {
		ctx, cancel := context.WithTimeout(rs.ctx, 3*time.Second)
		remote, err := renderer.DialRemote(ctx, rs.cfg.RemoteRendererURL, b.Key)
		cancel()
		if err != nil {
			logging.Logger().Warn("remote renderer unavailable", zap.Error(err))
		} else {
			rs.remote = remote
			handle = renderer.Fanout{rs.page, remote}
		}
	}
	rs.renderers.Register(b.Key, handle)

	rs.bridge = bridge.New(b.Key, bridge.Deps{
		Store:              rs.store,
		Renderers:          rs.renderers,
		Surface:            rs.surface,
		CloseMenu:          rs.closeMenu,
		OpenSettingsDialog: rs.openDialog,
	})
	if err := rs.bridge.Mount(); err != nil {
		logging.Logger().Warn("failed to save view settings", zap.String("book", b.Key), zap.Error(err))
	}
	rs.applyTheme()

	rs.mode = ReadingMode
	rs.statusMessage = ""
	rs.capture("book_opened", map[string]any{"book": b.Key})
	logging.Logger().Info("book opened", zap.String("book", b.Key), zap.Int("lines", len(lines)))
}

// closeBook unregisters the open book's renderer handle
func (rs *ReaderScreen) closeBook() {
	if rs.book == nil {
		return
	}
	rs.renderers.Unregister(rs.book.Key)
	if rs.remote != nil {
		if err := rs.remote.Close(); err != nil {
			logging.Logger().Debug("closing remote renderer", zap.Error(err))
		}
		rs.remote = nil
	}
	rs.book = nil
	rs.page = nil
	rs.bridge = nil
}

// applyTheme pushes the bridge's dark mode flag into the record and the
// page styles. The menu only flips the flag; the theme is applied here.
func (rs *ReaderScreen) applyTheme() {
	if rs.bridge == nil {
		return
	}
	key := rs.bridge.BookKey()

	vs, err := rs.store.Get(key)
	if err != nil {
		logging.Logger().Warn("failed to read view settings", zap.String("book", key), zap.Error(err))
		return
	}
	vs.Normalize()

	theme := viewsettings.ThemeLight
	if rs.bridge.State().Dark {
		theme = viewsettings.ThemeDark
	}
	if vs.Theme != theme {
		vs.Theme = theme
		if err := rs.store.Set(key, vs); err != nil {
			logging.Logger().Warn("failed to save theme", zap.String("book", key), zap.Error(err))
		}
	}

	rs.applyStyles(vs)
}

// applyStyles pushes styles for vs to the page. Zoom only applies in
// scrolled flow.
func (rs *ReaderScreen) applyStyles(vs viewsettings.ViewSettings) {
	if !vs.Scrolled {
		vs.ZoomLevel = viewsettings.DefaultZoom
	}
	if h, ok := rs.renderers.Get(rs.bridge.BookKey()); ok {
		if ss, ok := h.(renderer.StyleSetter); ok {
			ss.SetStyles(renderer.GetStyles(vs))
		}
	}
}

// reloadSettings handles an external change of the settings store
func (rs *ReaderScreen) reloadSettings() {
	if rs.bridge == nil {
		return
	}
	logging.Logger().Debug("view settings changed on disk", zap.String("book", rs.bridge.BookKey()))
	rs.bridge.Reseed()
	rs.applyTheme()
	if rs.page != nil {
		rs.page.SetAttribute(renderer.AttrFlow, renderer.Flow(rs.bridge.State().Scrolled))
	}
	if rs.mode == MenuMode {
		rs.viewMenu.SetItems(viewmenu.BuildItems(rs.bridge.State()))
	}
}

// Close cleans up resources
func (rs *ReaderScreen) Close() {
	rs.closeBook()
	rs.cancel()
	if rs.fonts != nil {
		rs.fonts.Close()
	}
}
