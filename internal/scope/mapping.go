// Package scope resolves semantic scope keys (fs_local, subroutine, ...) to
// selectors and answers selector queries against tagged buffer text.
package scope

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed mapping.json
var defaultMappingJSON []byte

// Mapping is the immutable scope key -> selector table.
// Build it once at startup and share the pointer.
type Mapping struct {
	selectors map[string]Selector
}

// LoadMapping parses a JSON object of key -> selector strings.
func LoadMapping(data []byte) (*Mapping, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse scope mapping: %w", err)
	}
	m := &Mapping{selectors: make(map[string]Selector, len(raw))}
	for key, sel := range raw {
		parsed, err := ParseSelector(sel)
		if err != nil {
			return nil, fmt.Errorf("scope key %q: %w", key, err)
		}
		m.selectors[key] = parsed
	}
	return m, nil
}

// DefaultMapping returns the embedded mapping.
func DefaultMapping() *Mapping {
	m, err := LoadMapping(defaultMappingJSON)
	if err != nil {
		// The embedded table is part of the build.
		panic(err)
	}
	return m
}

// WithOverrides returns a copy of m with the given selectors replaced.
func (m *Mapping) WithOverrides(overrides map[string]string) (*Mapping, error) {
	out := &Mapping{selectors: make(map[string]Selector, len(m.selectors)+len(overrides))}
	for k, v := range m.selectors {
		out.selectors[k] = v
	}
	for key, sel := range overrides {
		parsed, err := ParseSelector(sel)
		if err != nil {
			return nil, fmt.Errorf("scope override %q: %w", key, err)
		}
		out.selectors[key] = parsed
	}
	return out, nil
}

// Selector returns the selector for key.
func (m *Mapping) Selector(key string) (Selector, bool) {
	sel, ok := m.selectors[key]
	return sel, ok
}

// Keys lists the known scope keys in sorted order.
func (m *Mapping) Keys() []string {
	keys := make([]string, 0, len(m.selectors))
	for k := range m.selectors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
