package fontlayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"read-frame/pkg/viewsettings"
)

func TestAdjust(t *testing.T) {
	store := viewsettings.NewMemoryStore()
	initial := viewsettings.Defaults()
	initial.Scrolled = true
	require.NoError(t, store.Set("walden", initial))

	vs, err := Adjust(store, "walden", FontSizeEntry, 2)
	require.NoError(t, err)
	assert.Equal(t, 18, vs.DefaultFontSize)
	assert.True(t, vs.Scrolled, "other fields survive the write")

	vs, err = Adjust(store, "walden", FontSizeEntry, 100)
	require.NoError(t, err)
	assert.Equal(t, MaxFontSize, vs.DefaultFontSize)

	vs, err = Adjust(store, "walden", LineHeightEntry, -1)
	require.NoError(t, err)
	assert.InDelta(t, 1.4, vs.LineHeight, 1e-9)

	vs, err = Adjust(store, "walden", LineHeightEntry, -10)
	require.NoError(t, err)
	assert.InDelta(t, MinLineHeight, vs.LineHeight, 1e-9)

	stored, err := store.Get("walden")
	require.NoError(t, err)
	assert.Equal(t, vs, stored)
}

func TestBuildItemsAndNavigation(t *testing.T) {
	items := BuildItems(viewsettings.Defaults())
	require.Len(t, items, 3)
	assert.Equal(t, "16px", items[FontSizeEntry].Value)
	assert.Equal(t, "1.6", items[LineHeightEntry].Value)
	assert.Equal(t, "Back", items[BackEntry].Title)

	w := NewWidget()
	w.SetItems(items)
	w.MoveSelection(-1)
	assert.Equal(t, BackEntry, w.Selected())
	w.MoveSelection(1)
	assert.Equal(t, FontSizeEntry, w.Selected())
}
