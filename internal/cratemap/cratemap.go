// Package cratemap loads the mapping file that resolves proto packages
// to Rust crate paths.
package cratemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Map describes where generated Rust types live, per proto package.
type Map struct {
	// DefaultCrate is the path prefix for types in the package being
	// generated. Empty means "crate".
	DefaultCrate string `yaml:"default_crate"`

	// Packages maps foreign proto packages to crate paths, e.g.
	// "acme.common": "::acme_common_protos".
	Packages map[string]string `yaml:"packages"`
}

// LoadFile loads and parses a YAML crate map from the given path.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read crate map %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("crate map %s: %w", path, err)
	}
	return m, nil
}

// Parse parses YAML data into a Map.
func Parse(data []byte) (*Map, error) {
	var m Map

	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse crate map YAML: %w", err)
	}

	for pkg, crate := range m.Packages {
		if pkg == "" {
			return nil, fmt.Errorf("crate map has an entry with an empty package")
		}
		if crate == "" {
			return nil, fmt.Errorf("package %q maps to an empty crate path", pkg)
		}
	}

	return &m, nil
}
