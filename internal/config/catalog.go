package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/example/room-booking/internal/booking"
)

// ErrInvalidCatalog is returned when a catalog file is malformed.
var ErrInvalidCatalog = errors.New("config: invalid catalog")

// LoadCatalog reads a YAML block/room catalog such as:
//
//	blocks:
//	  - name: Block A
//	    rooms: [A1, A2]
func LoadCatalog(path string) (booking.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return booking.Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog. Unknown keys are rejected.
func ParseCatalog(raw []byte) (booking.Catalog, error) {
	var catalog booking.Catalog
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return booking.Catalog{}, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	seen := make(map[string]struct{}, len(catalog.Blocks))
	for i, b := range catalog.Blocks {
		name := strings.TrimSpace(b.Name)
		if name == "" {
			return booking.Catalog{}, fmt.Errorf("%w: block %d has no name", ErrInvalidCatalog, i+1)
		}
		if _, dup := seen[name]; dup {
			return booking.Catalog{}, fmt.Errorf("%w: block %q listed twice", ErrInvalidCatalog, name)
		}
		seen[name] = struct{}{}
		catalog.Blocks[i].Name = name
	}
	if len(catalog.Blocks) == 0 {
		return booking.Catalog{}, fmt.Errorf("%w: no blocks", ErrInvalidCatalog)
	}
	return catalog, nil
}

// Policy builds the validation rules from the configuration, loading the
// catalog file when one is configured.
func (c Config) Policy() (booking.Policy, error) {
	policy := booking.DefaultPolicy()
	if c.AuditoriumCapacity > 0 {
		policy.AuditoriumCapacity = c.AuditoriumCapacity
	}
	if c.CatalogFile != "" {
		catalog, err := LoadCatalog(c.CatalogFile)
		if err != nil {
			return booking.Policy{}, err
		}
		policy.Catalog = catalog
	}
	return policy, nil
}
