package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	a := [3]uint8{0, 100, 200}
	b := [3]uint8{100, 100, 0}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, [3]uint8{50, 100, 100}, Lerp(a, b, 0.5))
}

func TestSplitWords(t *testing.T) {
	assert.Equal(t, []string{"Call", "me", "Ishmael."}, splitWords("  Call me\tIshmael. "))
	assert.Empty(t, splitWords("   "))
}

func TestWrapTextWithoutFont(t *testing.T) {
	assert.Equal(t, []string{"plain line"}, WrapText("plain line", 10, nil))
}
