package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"shopsmart/models"
)

// StorageKey names the persisted preference (file name, cookie name).
const StorageKey = "shopsmart-theme"

// Store persists the explicit theme choice of a shopper.
// Load reports ok=false when nothing valid was stored.
type Store interface {
	Load() (theme models.Theme, ok bool, err error)
	Save(theme models.Theme) error
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// FileStore keeps the preference as a one-word text file.
type FileStore struct {
	path string
}

// NewFileStore stores the preference at path. A directory path gets
// StorageKey appended as the file name.
func NewFileStore(path string) *FileStore {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, StorageKey)
	}
	return &FileStore{path: path}
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() (models.Theme, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read theme preference: %w", err)
	}
	t, ok := models.ParseTheme(strings.TrimSpace(string(data)))
	return t, ok, nil
}

func (s *FileStore) Save(t models.Theme) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create theme directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(string(t)+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write theme preference: %w", err)
	}
	return nil
}

// MemoryStore holds the preference in memory. The HTTP adapter seeds one per
// session from the theme cookie.
type MemoryStore struct {
	mu    sync.Mutex
	theme models.Theme
	set   bool
}

// NewMemoryStore returns a store preloaded with value when it names a theme.
func NewMemoryStore(value string) *MemoryStore {
	s := &MemoryStore{}
	if t, ok := models.ParseTheme(value); ok {
		s.theme, s.set = t, true
	}
	return s
}

func (s *MemoryStore) Load() (models.Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme, s.set, nil
}

func (s *MemoryStore) Save(t models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme, s.set = t, true
	return nil
}
