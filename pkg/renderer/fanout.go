package renderer

// Fanout forwards every call to each of its handles. Handles without style
// injection are skipped by SetStyles.
type Fanout []Handle

func (f Fanout) SetAttribute(name, value string) {
	for _, h := range f {
		h.SetAttribute(name, value)
	}
}

func (f Fanout) SetStyles(styles Styles) {
	for _, h := range f {
		if ss, ok := h.(StyleSetter); ok {
			ss.SetStyles(styles)
		}
	}
}
