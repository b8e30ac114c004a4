package viewsettings

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{100, 100},
		{50, 50},
		{200, 200},
		{49, 50},
		{210, 200},
		{-30, 50},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampZoom(tt.in), "ClampZoom(%d)", tt.in)
	}
}

func TestNormalize(t *testing.T) {
	s := ViewSettings{Theme: "sepia", ZoomLevel: 400}
	s.Normalize()

	assert.Equal(t, ThemeLight, s.Theme)
	assert.Equal(t, MaxZoom, s.ZoomLevel)
	assert.Equal(t, Defaults().DefaultFontSize, s.DefaultFontSize)
	assert.Equal(t, Defaults().LineHeight, s.LineHeight)

	dark := ViewSettings{Theme: ThemeDark, Scrolled: true, Invert: true, ZoomLevel: 120, DefaultFontSize: 20, LineHeight: 1.2}
	want := dark
	dark.Normalize()
	assert.Equal(t, want, dark)
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	got, err := m.Get("book")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	got.Scrolled = true
	require.NoError(t, m.Set("book", got))

	again, err := m.Get("book")
	require.NoError(t, err)
	assert.True(t, again.Scrolled)

	_, err = m.Get("")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, m.Set("", got), ErrInvalidKey)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "view-settings.json")
	store := NewFileStore(path)

	got, err := store.Get("moby-dick")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	got.ZoomLevel = 150
	got.Theme = ThemeDark
	require.NoError(t, store.Set("moby-dick", got))
	require.NoError(t, store.Set("walden", Defaults()))

	reopened := NewFileStore(path)
	again, err := reopened.Get("moby-dick")
	require.NoError(t, err)
	assert.Equal(t, 150, again.ZoomLevel)
	assert.Equal(t, ThemeDark, again.Theme)

	other, err := reopened.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), other)
}

func TestFileStoreMalformedFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view-settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileStore(path)
	got, err := store.Get("book")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), got)

	// A write replaces the malformed document.
	require.NoError(t, store.Set("book", got))
	_, err = store.Get("book")
	require.NoError(t, err)
}

func TestFileStoreWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view-settings.json")
	store := NewFileStore(path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 16)
	require.NoError(t, store.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}))

	// Another process writing the same file.
	other := NewFileStore(path)
	require.NoError(t, other.Set("book", ViewSettings{Theme: ThemeDark, ZoomLevel: 120}))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the settings change")
	}

	got, err := store.Get("book")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, got.Theme)
}
