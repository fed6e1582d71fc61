package zodiac

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Registry maps a zodiac-sign identifier (lower-case, possibly bearing
// diacritics, e.g. "býk") to the people born under that sign. It is
// loaded once at startup and treated as immutable configuration.
type Registry map[string][]string

// LoadRegistry reads a registry from a JSON file of the form
// {"beran": ["Alice"], "býk": ["Bob", "Cara"]}. Each person must appear
// under exactly one sign; a duplicate is a configuration error because
// it would corrupt relationship-pair symmetry.
func LoadRegistry(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", path, err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}

	if err := reg.Validate(); err != nil {
		return nil, fmt.Errorf("registry %s: %w", path, err)
	}
	return reg, nil
}

// Validate checks that no person is listed under more than one sign.
func (r Registry) Validate() error {
	seen := make(map[string]string)
	for sign, names := range r {
		for _, name := range names {
			if prev, ok := seen[name]; ok {
				return fmt.Errorf("person %q listed under both %q and %q", name, prev, sign)
			}
			seen[name] = sign
		}
	}
	return nil
}

// lookup builds a lookup table keyed by the trimmed, lower-cased sign
// identifier, matching how scraped tokens are normalized before lookup.
func (r Registry) lookup() map[string][]string {
	m := make(map[string][]string, len(r))
	for sign, names := range r {
		m[strings.ToLower(strings.TrimSpace(sign))] = names
	}
	return m
}

// Column returns the matrix column label a registry key resolves to:
// diacritics stripped, then capitalized ("štír" -> "Stir").
func (r Registry) Column(sign string) string {
	return Capitalize(StripDiacritics(sign))
}
