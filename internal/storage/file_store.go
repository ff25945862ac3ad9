package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore is a durable KeyValue backed by one file per key under a base
// directory. Browser sessions get isolated views via Namespace, so the fixed
// session keys never collide across sessions.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// sanitizeKey prevents path traversal through key names.
func sanitizeKey(key string) string {
	cleaned := filepath.Clean(key)
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") {
		return ""
	}
	return cleaned
}

func (s *FileStore) path(key string) string {
	sanitized := sanitizeKey(key)
	if sanitized == "" {
		return ""
	}
	return filepath.Join(s.dir, sanitized)
}

// Get returns the value stored under key. Any read failure is treated as
// absence; validity of the contents is the caller's concern.
func (s *FileStore) Get(key string) (string, bool) {
	path := s.path(key)
	if path == "" {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value under key.
func (s *FileStore) Set(key, value string) error {
	path := s.path(key)
	if path == "" {
		return fmt.Errorf("invalid storage key %q", key)
	}
	if err := os.WriteFile(path, []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write storage key %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Removing an absent key is a no-op.
func (s *FileStore) Delete(key string) {
	path := s.path(key)
	if path == "" {
		return
	}
	_ = os.Remove(path)
}

// Namespace returns an isolated KeyValue view rooted at a subdirectory. The
// name is sanitized the same way keys are.
func (s *FileStore) Namespace(name string) (KeyValue, error) {
	sanitized := sanitizeKey(name)
	if sanitized == "" {
		return nil, fmt.Errorf("invalid namespace %q", name)
	}
	dir := filepath.Join(s.dir, sanitized)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create namespace %q: %w", name, err)
	}
	return &FileStore{dir: dir}, nil
}

var _ KeyValue = (*FileStore)(nil)
