package server

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/preston-bernstein/campus-dining-service/internal/config"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/store"
)

const sqliteFileName = "menu.db"

// buildStore opens the configured backend. A read-only sqlite cache that does not exist yet is
// served from memory so nothing is created on disk.
func buildStore(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) (store.KV, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "memory":
		return store.NewMemoryStore(), nil
	case "file", "":
		return store.NewFSStore(cfg.Path), nil
	case "sqlite":
		path := sqlitePath(cfg.Path)
		if cfg.ReadOnly && path != ":memory:" {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				return store.NewMemoryStore(), nil
			}
		}
		db, err := store.OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		logging.Warn(logger, "unknown cache backend, falling back to memory", slog.String("backend", cfg.Backend))
		return store.NewMemoryStore(), nil
	}
}

// sqlitePath treats an extension-less path as a directory holding menu.db.
func sqlitePath(path string) string {
	if path == ":memory:" || filepath.Ext(path) != "" {
		return path
	}
	return filepath.Join(path, sqliteFileName)
}
