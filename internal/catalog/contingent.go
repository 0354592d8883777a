package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"invento/internal/domain"
)

// LoadContingentKeys reads a YAML file of the form
//
//	keys:
//	  - clgName: Example College
//	    key: EXAMPLE-2026
func LoadContingentKeys(path string) ([]*domain.ContingentKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contingent keys: %w", err)
	}
	return ParseContingentKeys(data)
}

// ParseContingentKeys decodes contingent keys; college names and keys must be unique.
func ParseContingentKeys(data []byte) ([]*domain.ContingentKey, error) {
	var f struct {
		Keys []*domain.ContingentKey `yaml:"keys"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode contingent keys: %w", err)
	}
	colleges := make(map[string]struct{}, len(f.Keys))
	keys := make(map[string]struct{}, len(f.Keys))
	for i, k := range f.Keys {
		k.ClgName = strings.TrimSpace(k.ClgName)
		k.Key = strings.TrimSpace(k.Key)
		if k.ClgName == "" || k.Key == "" {
			return nil, fmt.Errorf("contingent key %d: clgName and key are required", i)
		}
		if _, ok := colleges[k.ClgName]; ok {
			return nil, fmt.Errorf("duplicate college %q", k.ClgName)
		}
		if _, ok := keys[k.Key]; ok {
			return nil, fmt.Errorf("duplicate key for %q", k.ClgName)
		}
		colleges[k.ClgName] = struct{}{}
		keys[k.Key] = struct{}{}
	}
	return f.Keys, nil
}
