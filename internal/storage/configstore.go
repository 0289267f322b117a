package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultFolder is served whenever the persisted storage configuration is
// missing, corrupt, or unreadable. A broken config file must never fail an
// unrelated upload.
const DefaultFolder = "default-folder"

// ErrEmptyPath rejects configuration updates with no destination.
var ErrEmptyPath = errors.New("storage path must not be empty")

// Settings is the single mutable storage configuration record.
type Settings struct {
	Path string `json:"path"`
}

// Store reads and writes the active upload destination. The file-backed
// implementation is used in production; the in-memory one in tests.
type Store interface {
	Read(ctx context.Context) Settings
	Write(ctx context.Context, path string) (Settings, error)
}

// FileStore persists settings as a small JSON file. Concurrent writers are
// not serialized: updates are rare administrative actions and the last
// write wins.
type FileStore struct {
	file string
	log  *logrus.Logger
}

func NewFileStore(file string, log *logrus.Logger) *FileStore {
	return &FileStore{file: file, log: log}
}

func (s *FileStore) Read(ctx context.Context) Settings {
	data, err := os.ReadFile(s.file)
	if err != nil {
		return Settings{Path: DefaultFolder}
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil || settings.Path == "" {
		s.log.Warnf("Storage config file %s is unreadable, using default: %v", s.file, err)
		return Settings{Path: DefaultFolder}
	}

	return settings
}

func (s *FileStore) Write(ctx context.Context, path string) (Settings, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{Path: normalized}
	data, err := json.Marshal(settings)
	if err != nil {
		return Settings{}, err
	}

	if err := os.WriteFile(s.file, data, 0o644); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// normalizePath resolves filesystem-looking values to absolute form; bare
// cloud folder names pass through unchanged, including dotted names like
// ".archive".
func normalizePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	if strings.ContainsRune(path, os.PathSeparator) ||
		strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		return filepath.Abs(path)
	}
	return path, nil
}

// MemoryStore is the injectable in-memory implementation.
type MemoryStore struct {
	mu       sync.RWMutex
	settings Settings
}

func NewMemoryStore(path string) *MemoryStore {
	if path == "" {
		path = DefaultFolder
	}
	return &MemoryStore{settings: Settings{Path: path}}
}

func (s *MemoryStore) Read(ctx context.Context) Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *MemoryStore) Write(ctx context.Context, path string) (Settings, error) {
	normalized, err := normalizePath(path)
	if err != nil {
		return Settings{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = Settings{Path: normalized}
	return s.settings, nil
}
