package input

import "github.com/veandco/go-sdl2/sdl"

// edge reports rising edges of boolean signals keyed by K, so a held key or
// button fires once per press.
type edge[K comparable] struct {
	down map[K]bool
}

func newEdge[K comparable]() edge[K] {
	return edge[K]{down: make(map[K]bool)}
}

func (e edge[K]) rising(key K, isDown bool) bool {
	wasDown := e.down[key]
	e.down[key] = isDown
	return isDown && !wasDown
}

// KeyPressTracker detects key presses from SDL keyboard state snapshots
type KeyPressTracker struct {
	edge[sdl.Scancode]
}

// NewKeyPressTracker creates a new KeyPressTracker
func NewKeyPressTracker() KeyPressTracker {
	return KeyPressTracker{newEdge[sdl.Scancode]()}
}

// IsPressed checks if a key was just pressed (not held)
func (t *KeyPressTracker) IsPressed(keyState []uint8, scancode sdl.Scancode) bool {
	if int(scancode) >= len(keyState) {
		return false
	}
	return t.rising(scancode, keyState[scancode] != 0)
}

// AnyPressed checks several keys and reports whether any was just pressed.
// Every key is evaluated so that none keeps a stale state.
func (t *KeyPressTracker) AnyPressed(keyState []uint8, scancodes ...sdl.Scancode) bool {
	pressed := false
	for _, sc := range scancodes {
		if t.IsPressed(keyState, sc) {
			pressed = true
		}
	}
	return pressed
}

// MousePressTracker detects mouse button presses from SDL button masks
type MousePressTracker struct {
	edge[uint32]
}

// NewMousePressTracker creates a new MousePressTracker
func NewMousePressTracker() MousePressTracker {
	return MousePressTracker{newEdge[uint32]()}
}

// IsPressed checks if a mouse button (by mask) was just pressed (not held)
func (t *MousePressTracker) IsPressed(mouseState uint32, buttonMask uint32) bool {
	return t.rising(buttonMask, mouseState&buttonMask != 0)
}
