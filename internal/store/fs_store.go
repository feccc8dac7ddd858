package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FSStore keeps one file per key under basePath. Writes go to a temp file and are renamed into
// place, so readers see either the old value or the new one.
type FSStore struct {
	basePath string
}

// NewFSStore constructs a filesystem store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// BasePath exposes the store root.
func (s *FSStore) BasePath() string {
	if s == nil {
		return ""
	}
	return s.basePath
}

func (s *FSStore) path(key string) string {
	return filepath.Join(s.basePath, key+".json")
}

// Get reads the file for key. A missing file is reported as not found.
func (s *FSStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil {
		return "", false, errors.New("store: filesystem store not configured")
	}
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value for key atomically.
func (s *FSStore) Set(ctx context.Context, key, value string) error {
	if s == nil {
		return errors.New("store: filesystem store not configured")
	}
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.basePath, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, key+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", key, err)
	}
	return nil
}
