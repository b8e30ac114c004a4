package reader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"read-frame/pkg/config"
	"read-frame/pkg/display"
	"read-frame/pkg/input"
	"read-frame/pkg/logging"
	"read-frame/pkg/renderer"
	"read-frame/pkg/telemetry"
	"read-frame/pkg/viewsettings"
	"read-frame/widgets/fontlayout"
	librarywidget "read-frame/widgets/library"
	"read-frame/widgets/viewmenu"
)

type captured struct {
	event string
	props map[string]any
}

type recordingClient struct {
	events []captured
}

func (r *recordingClient) Capture(event string, props map[string]any) error {
	r.events = append(r.events, captured{event, props})
	return nil
}

func (r *recordingClient) Close() error { return nil }

// newTestScreen builds a reader screen without a window. Only drawing needs
// SDL, so the menu and dialog logic can run headless.
func newTestScreen(t *testing.T) (*ReaderScreen, *viewsettings.MemoryStore, *recordingClient) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walden.txt"), []byte("When I wrote the following pages\nI lived alone\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moby_dick.txt"), []byte("Call me Ishmael.\n"), 0o644))

	cfg := config.Default()
	cfg.LibraryDir = dir

	client := &recordingClient{}
	ctx, cancel := context.WithCancel(telemetry.WithClient(context.Background(), client))
	t.Cleanup(cancel)

	store := viewsettings.NewMemoryStore()
	rs := &ReaderScreen{
		cfg:           cfg,
		store:         store,
		renderers:     renderer.NewRegistry(),
		surface:       display.NewSurface(),
		ctx:           ctx,
		cancel:        cancel,
		viewMenu:      viewmenu.NewWidget(),
		dialog:        fontlayout.NewWidget(),
		libraryWidget: librarywidget.NewWidget(),
		keyTracker:    input.NewKeyPressTracker(),
		mouseTracker:  input.NewMousePressTracker(),
	}
	rs.refreshLibrary()
	require.Len(t, rs.books, 2)
	return rs, store, client
}

// selectControl moves the view menu selection onto c
func selectControl(t *testing.T, rs *ReaderScreen, c viewmenu.Control) {
	t.Helper()
	for i := 0; i < 10; i++ {
		if it, ok := rs.viewMenu.SelectedItem(); ok && it.Control == c {
			return
		}
		if it, _ := rs.viewMenu.SelectedItem(); it.Control <= viewmenu.ZoomIn && c <= viewmenu.ZoomIn {
			rs.viewMenu.MoveColumn(int(c) - int(it.Control))
			continue
		}
		rs.viewMenu.MoveSelection(1)
	}
	t.Fatalf("control %d not reachable", c)
}

func TestOpenBookRegistersPage(t *testing.T) {
	rs, _, client := newTestScreen(t)

	rs.openBook(rs.books[0])
	require.NotNil(t, rs.page)
	assert.Equal(t, ReadingMode, rs.mode)
	assert.Equal(t, "moby_dick", rs.bridge.BookKey())

	h, ok := rs.renderers.Get("moby_dick")
	require.True(t, ok)
	assert.Same(t, rs.page, h)
	assert.Equal(t, renderer.FlowPaginated, rs.page.Flow())

	require.NotEmpty(t, client.events)
	assert.Equal(t, "book_opened", client.events[len(client.events)-1].event)

	// Switching books unregisters the previous page
	rs.openBook(rs.books[1])
	_, ok = rs.renderers.Get("moby_dick")
	assert.False(t, ok)
	_, ok = rs.renderers.Get("walden")
	assert.True(t, ok)
}

func TestMenuDrivesPage(t *testing.T) {
	rs, store, client := newTestScreen(t)
	rs.openBook(rs.books[1])

	rs.openMenu()
	require.Equal(t, MenuMode, rs.mode)
	last := client.events[len(client.events)-1]
	assert.Equal(t, "view_menu_toggled", last.event)
	assert.Equal(t, true, last.props["open"])

	selectControl(t, rs, viewmenu.ScrolledMode)
	rs.activateMenuSelection()
	assert.Equal(t, renderer.FlowScrolled, rs.page.Flow())

	selectControl(t, rs, viewmenu.ZoomIn)
	rs.activateMenuSelection()
	assert.Equal(t, 17, rs.page.Styles().FontSize)

	selectControl(t, rs, viewmenu.DarkMode)
	rs.activateMenuSelection()
	dark := viewsettings.Defaults()
	dark.Theme = viewsettings.ThemeDark
	assert.Equal(t, renderer.GetStyles(dark).Background, rs.page.Styles().Background)
	assert.Equal(t, 17, rs.page.Styles().FontSize, "zoom survives the theme change")

	selectControl(t, rs, viewmenu.InvertColors)
	rs.activateMenuSelection()
	assert.True(t, rs.surface.Inverted(true))

	vs, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, viewsettings.ViewSettings{
		Theme:           viewsettings.ThemeDark,
		Scrolled:        true,
		Invert:          true,
		ZoomLevel:       110,
		DefaultFontSize: 16,
		LineHeight:      1.6,
	}, vs)

	rs.closeMenu()
	assert.Equal(t, ReadingMode, rs.mode)
	last = client.events[len(client.events)-1]
	assert.Equal(t, false, last.props["open"])
}

func TestFontLayoutDialog(t *testing.T) {
	rs, store, _ := newTestScreen(t)
	rs.openBook(rs.books[1])
	rs.openMenu()

	selectControl(t, rs, viewmenu.FontLayout)
	rs.activateMenuSelection()
	require.Equal(t, DialogMode, rs.mode)

	rs.adjustLayout(2)
	vs, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, 18, vs.DefaultFontSize)
	assert.Equal(t, 18, rs.page.Styles().FontSize)
}

func TestReloadSettingsFollowsStore(t *testing.T) {
	rs, store, _ := newTestScreen(t)
	rs.openBook(rs.books[1])

	vs := viewsettings.Defaults()
	vs.Scrolled = true
	vs.ZoomLevel = 150
	require.NoError(t, store.Set("walden", vs))

	rs.reloadSettings()
	st := rs.bridge.State()
	assert.True(t, st.Scrolled)
	assert.Equal(t, 150, st.ZoomLevel)
	assert.Equal(t, renderer.FlowScrolled, rs.page.Flow())
	assert.Equal(t, 24, rs.page.Styles().FontSize)

	// Paginated flow renders at 100% whatever the stored zoom
	vs.Scrolled = false
	require.NoError(t, store.Set("walden", vs))
	rs.reloadSettings()
	assert.Equal(t, renderer.FlowPaginated, rs.page.Flow())
	assert.Equal(t, 16, rs.page.Styles().FontSize)
}

func TestOpenLibraryKeepsBook(t *testing.T) {
	rs, _, _ := newTestScreen(t)
	rs.openBook(rs.books[0])

	rs.openLibrary()
	assert.Equal(t, LibraryMode, rs.mode)
	assert.Len(t, rs.libraryWidget.Cards(), 2)
	assert.NotNil(t, rs.page)
}

func TestFlowToggleRestylesPage(t *testing.T) {
	rs, store, _ := newTestScreen(t)

	vs := viewsettings.Defaults()
	vs.Scrolled = true
	vs.ZoomLevel = 150
	require.NoError(t, store.Set("walden", vs))

	rs.openBook(rs.books[1])
	require.Equal(t, 24, rs.page.Styles().FontSize)

	rs.openMenu()
	selectControl(t, rs, viewmenu.ScrolledMode)

	rs.activateMenuSelection()
	assert.Equal(t, renderer.FlowPaginated, rs.page.Flow())
	assert.Equal(t, 16, rs.page.Styles().FontSize, "paginated flow drops the zoom")

	rs.activateMenuSelection()
	assert.Equal(t, renderer.FlowScrolled, rs.page.Flow())
	assert.Equal(t, 24, rs.page.Styles().FontSize, "scrolled flow restores the zoom")
}

type failingClient struct{}

func (failingClient) Capture(string, map[string]any) error { return errors.New("offline") }
func (failingClient) Close() error                         { return nil }

func TestCaptureFailuresAreLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(zap.NewNop()) })

	rs, _, _ := newTestScreen(t)
	rs.ctx = telemetry.WithClient(context.Background(), failingClient{})

	rs.openBook(rs.books[1])
	require.NotNil(t, rs.page)
	rs.openMenu()
	rs.closeMenu()

	failed := logs.FilterMessage("analytics capture failed")
	require.Equal(t, 3, failed.Len())
	var events []string
	for _, e := range failed.All() {
		events = append(events, e.ContextMap()["event"].(string))
	}
	assert.Equal(t, []string{"book_opened", "view_menu_toggled", "view_menu_toggled"}, events)
}
