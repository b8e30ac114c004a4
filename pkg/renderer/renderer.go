package renderer

import "sync"

// Layout flow attribute and its two supported values.
const (
	AttrFlow      = "flow"
	FlowScrolled  = "scrolled"
	FlowPaginated = "paginated"
)

// Handle is an open document's rendering surface.
type Handle interface {
	SetAttribute(name, value string)
}

// StyleSetter is implemented by handles that accept injected styles.
type StyleSetter interface {
	SetStyles(styles Styles)
}

// Flow returns the flow attribute value for a scroll mode.
func Flow(scrolled bool) string {
	if scrolled {
		return FlowScrolled
	}
	return FlowPaginated
}

// Registry maps book keys to the handles of documents that are currently
// rendered. A key is absent until its document has been mounted.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Get returns the handle for bookKey, or false when the document is not
// rendered yet.
func (r *Registry) Get(bookKey string) (Handle, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handles[bookKey]
	return h, ok && h != nil
}

// Register associates h with bookKey, replacing any previous handle.
func (r *Registry) Register(bookKey string, h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handles[bookKey] = h
}

// Unregister forgets the handle for bookKey.
func (r *Registry) Unregister(bookKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handles, bookKey)
}
