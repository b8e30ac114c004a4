package display

import "sync"

// ClassInvert marks the document surface for color inversion. It only has a
// visible effect while dark mode is on.
const ClassInvert = "invert"

// Surface holds display classes shared by every open document, like classes
// on a page body.
type Surface struct {
	mu      sync.RWMutex
	classes map[string]bool
}

// NewSurface creates a surface with no classes set.
func NewSurface() *Surface {
	return &Surface{classes: make(map[string]bool)}
}

// Toggle sets or clears class.
func (s *Surface) Toggle(class string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.classes[class] = true
	} else {
		delete(s.classes, class)
	}
}

// Has reports whether class is set.
func (s *Surface) Has(class string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.classes[class]
}

// Inverted reports whether colors are actually drawn inverted.
func (s *Surface) Inverted(dark bool) bool {
	return dark && s.Has(ClassInvert)
}
