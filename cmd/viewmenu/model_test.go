package main

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"read-frame/pkg/renderer"
	"read-frame/pkg/viewsettings"
	"read-frame/widgets/fontlayout"
	"read-frame/widgets/viewmenu"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type flowRecorder struct {
	flows []string
}

func (f *flowRecorder) SetAttribute(name, value string) {
	if name == renderer.AttrFlow {
		f.flows = append(f.flows, value)
	}
}

func send(m *model, msgs ...tea.Msg) {
	for _, msg := range msgs {
		m.Update(msg)
	}
}

func TestModelShortcuts(t *testing.T) {
	store := viewsettings.NewMemoryStore()
	reg := renderer.NewRegistry()
	rec := &flowRecorder{}
	reg.Register("walden", rec)

	m := newModel("walden", store, reg)

	// Zoom is disabled while paginated
	send(m, runes("+"))
	assert.Equal(t, 100, m.bridge.State().ZoomLevel)

	send(m, runes("J"), runes("+"), runes("+"))
	st := m.bridge.State()
	assert.True(t, st.Scrolled)
	assert.Equal(t, 120, st.ZoomLevel)
	assert.Equal(t, []string{"paginated", "scrolled"}, rec.flows)

	vs, err := store.Get("walden")
	require.NoError(t, err)
	assert.True(t, vs.Scrolled)
	assert.Equal(t, 120, vs.ZoomLevel)

	send(m, runes("0"))
	assert.Equal(t, 100, m.bridge.State().ZoomLevel)
	assert.Contains(t, m.View(), "[100%]")
}

func TestModelDarkModePersistsTheme(t *testing.T) {
	store := viewsettings.NewMemoryStore()
	m := newModel("walden", store, nil)

	// Invert needs dark mode first
	send(m, runes("i"))
	assert.False(t, m.bridge.State().Invert)

	send(m, runes("d"), runes("i"))
	vs, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, viewsettings.ThemeDark, vs.Theme)
	assert.True(t, vs.Invert)
	assert.Contains(t, m.View(), "colors inverted")
}

func TestModelNavigationOpensDialog(t *testing.T) {
	store := viewsettings.NewMemoryStore()
	m := newModel("walden", store, nil)

	// Selection starts on the zoom reset control
	it, ok := m.menu.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, viewmenu.ZoomReset, it.Control)

	send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateDialog, m.state)
	assert.Contains(t, m.View(), "Font Size: 16px")

	send(m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyRight})
	vs, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, 18, vs.DefaultFontSize)

	send(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyLeft})
	vs, err = store.Get("walden")
	require.NoError(t, err)
	assert.InDelta(t, 1.4, vs.LineHeight, 1e-9)

	send(m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, fontlayout.BackEntry, m.dialog.Selected())
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, stateMenu, m.state)
}

func TestModelMountsBeforeFirstUpdate(t *testing.T) {
	store := viewsettings.NewMemoryStore()
	vs := viewsettings.Defaults()
	vs.Scrolled = true
	vs.ZoomLevel = 130
	require.NoError(t, store.Set("walden", vs))

	reg := renderer.NewRegistry()
	rec := &flowRecorder{}
	reg.Register("walden", rec)

	m := newModel("walden", store, reg)
	assert.Nil(t, m.Init())
	assert.Equal(t, []string{"scrolled"}, rec.flows)
	assert.Empty(t, m.status)

	// The first key builds on the mounted state
	send(m, runes("+"))
	assert.Equal(t, 140, m.bridge.State().ZoomLevel)
	assert.Equal(t, []string{"scrolled"}, rec.flows)

	got, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, 140, got.ZoomLevel)
	assert.True(t, got.Scrolled)
}

type failingStore struct {
	viewsettings.Store
}

func (failingStore) Set(string, viewsettings.ViewSettings) error {
	return errors.New("disk full")
}

func TestModelShowsSaveErrors(t *testing.T) {
	m := newModel("walden", failingStore{viewsettings.NewMemoryStore()}, nil)
	assert.Contains(t, m.View(), "Failed to save setting", "mount errors show before any key")

	send(m, runes("J"))
	assert.True(t, m.bridge.State().Scrolled, "local state flips even when the save fails")
	assert.Contains(t, m.View(), "Failed to save setting")

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
