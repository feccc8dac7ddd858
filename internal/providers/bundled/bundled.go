// Package bundled serves the menu shipped with the binary. It is the tier of last resort and never fails at runtime.
package bundled

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
)

//go:embed data/monthly-menu.json
var embedded []byte

// Source holds a validated bundled catalog and the raw bytes it was decoded from.
type Source struct {
	catalog meals.Catalog
	raw     []byte
}

// New returns the embedded menu. The asset is validated by tests, so a decode failure is a build defect.
func New() *Source {
	src, err := FromBytes(embedded)
	if err != nil {
		panic(fmt.Sprintf("bundled: embedded menu is invalid: %v", err))
	}
	return src
}

// Load reads a bundled menu from path, or returns the embedded one when path is empty.
func Load(path string) (*Source, error) {
	if path == "" {
		return New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bundled: read %s: %w", path, err)
	}
	return FromBytes(data)
}

// FromBytes decodes and validates a bundled payload.
func FromBytes(data []byte) (*Source, error) {
	catalog, err := meals.DecodeCatalog(data)
	if err != nil {
		return nil, err
	}
	return &Source{catalog: catalog, raw: append([]byte(nil), data...)}, nil
}

// Catalog returns a copy of the bundled catalog.
func (s *Source) Catalog() meals.Catalog {
	if s == nil {
		return meals.Catalog{}
	}
	return s.catalog.Clone()
}

// Raw returns the payload bytes, used to seed the cache on first run.
func (s *Source) Raw() []byte {
	if s == nil {
		return nil
	}
	return append([]byte(nil), s.raw...)
}
