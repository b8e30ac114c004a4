package viewsettings

import "sync"

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]ViewSettings
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]ViewSettings)}
}

func (m *MemoryStore) Get(bookKey string) (ViewSettings, error) {
	if bookKey == "" {
		return ViewSettings{}, ErrInvalidKey
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.records[bookKey]
	if !ok {
		return Defaults(), nil
	}
	return s, nil
}

func (m *MemoryStore) Set(bookKey string, s ViewSettings) error {
	if bookKey == "" {
		return ErrInvalidKey
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[bookKey] = s
	return nil
}
