package viewsettings

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"read-frame/pkg/logging"
)

// FileStore persists all books' settings in a single JSON document keyed by
// book key. Every Get reads the file so that writes from other processes are
// visible.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the file at path. The file does not
// need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

// Get returns the record for bookKey. When the file is missing, malformed or
// has no entry for the key, defaults are returned so reading can continue.
func (f *FileStore) Get(bookKey string) (ViewSettings, error) {
	if bookKey == "" {
		return ViewSettings{}, ErrInvalidKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	records := f.load()
	s, ok := records[bookKey]
	if !ok {
		return Defaults(), nil
	}
	s.Normalize()
	return s, nil
}

// Set replaces the record for bookKey and writes the whole document back.
func (f *FileStore) Set(bookKey string, s ViewSettings) error {
	if bookKey == "" {
		return ErrInvalidKey
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	records := f.load()
	records[bookKey] = s
	return f.save(records)
}

func (f *FileStore) load() map[string]ViewSettings {
	records := make(map[string]ViewSettings)

	data, err := os.ReadFile(f.path)
	if err != nil {
		// No existing file, start empty.
		return records
	}
	if err := json.Unmarshal(data, &records); err != nil {
		logging.Logger().Warn("malformed view settings file, using defaults",
			zap.String("path", f.path), zap.Error(err))
		return make(map[string]ViewSettings)
	}
	return records
}

// save writes to a temp file in the same directory and renames it over the
// target so readers never observe a partial document.
func (f *FileStore) save(records map[string]ViewSettings) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		tmp.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}
	return nil
}

// Watch calls onChange whenever the backing file is written, created or
// replaced, until ctx is done. The parent directory is watched because
// atomic writers replace the file rather than modify it. onChange runs on the
// watcher goroutine.
func (f *FileStore) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(f.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Logger().Warn("settings watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
