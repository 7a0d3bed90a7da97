package shell

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// maxRecents caps the recently-opened list.
const maxRecents = 10

// RecentFile is one entry in the recently-opened list.
type RecentFile struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	OpenedAt time.Time `json:"openedAt"`
}

// RecentsStore is a file-backed store for the recently-opened-projects
// list, kept as a JSON file in a config directory.
type RecentsStore struct {
	mu      sync.Mutex
	baseDir string
}

// NewRecentsStore creates a recents store.
// If baseDir is empty, defaults to ~/.config/questforge/
func NewRecentsStore(baseDir string) (*RecentsStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "questforge")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	return &RecentsStore{baseDir: baseDir}, nil
}

func (s *RecentsStore) path() string {
	return filepath.Join(s.baseDir, "recents.json")
}

// List returns the recently-opened entries, most recent first. A missing
// or unreadable store file yields an empty list rather than an error.
func (s *RecentsStore) List() []RecentFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *RecentsStore) load() []RecentFile {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return nil
	}
	var entries []RecentFile
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Add records that the project at path (with the given display name) was
// just opened. The entry moves to the front; the list is truncated to
// maxRecents.
func (s *RecentsStore) Add(path, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	entries = slices.DeleteFunc(entries, func(e RecentFile) bool {
		return e.Path == path
	})
	entries = append([]RecentFile{{Path: path, Name: name, OpenedAt: time.Now().UTC()}}, entries...)
	if len(entries) > maxRecents {
		entries = entries[:maxRecents]
	}
	return s.save(entries)
}

// Remove drops the entry for path, used when a recent file turns out to
// no longer exist on disk.
func (s *RecentsStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := slices.DeleteFunc(s.load(), func(e RecentFile) bool {
		return e.Path == path
	})
	return s.save(entries)
}

func (s *RecentsStore) save(entries []RecentFile) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal recents: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("write recents file: %w", err)
	}
	return nil
}

// Path returns the recents file location.
func (s *RecentsStore) Path() string {
	return s.path()
}
