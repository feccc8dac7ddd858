// Package store persists the cached menu tier behind a small key-value interface.
package store

import (
	"context"
	"errors"
	"regexp"
)

// ErrInvalidKey is returned for keys that are empty or unsafe to use as file names.
var ErrInvalidKey = errors.New("store: invalid key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// KV is the cache abstraction the resolver persists its monthly blob through.
// Get reports false when the key has never been set.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

func validateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return ErrInvalidKey
	}
	return nil
}
