package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walden.txt"), []byte("Walden\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "moby_dick-1851.TXT"), []byte("Call me Ishmael.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cover.png"), []byte{0x89}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes.txt"), 0o755))

	books, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, books, 2)

	assert.Equal(t, "moby_dick-1851", books[0].Key)
	assert.Equal(t, "Moby Dick 1851", books[0].Title)
	assert.Equal(t, "walden", books[1].Key)
	assert.Equal(t, "Walden", books[1].Title)

	_, err = Scan(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\n\nfour"), 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "", "four"}, lines)
}
