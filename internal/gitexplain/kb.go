// Package gitexplain explains common git error states, and the build state
// of the surrounding project, in plain language. The knowledge base is a
// static embedded table; every probe used to match a condition is either a
// read-only git query issued through the guarded executor or a filesystem
// stat.
package gitexplain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed conditions.yaml
var conditionsYAML []byte

// Condition is one entry of the knowledge base: a named git error state
// with its plain-language explanation and suggested (never executed) fixes.
type Condition struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Explanation string   `yaml:"explanation"`
	Reason      string   `yaml:"reason"`
	Fixes       []string `yaml:"fixes"`
	Warning     string   `yaml:"warning"`
}

// loadConditions parses the embedded knowledge base, keyed by condition id.
func loadConditions() (map[string]Condition, error) {
	var doc struct {
		Conditions []Condition `yaml:"conditions"`
	}
	if err := yaml.Unmarshal(conditionsYAML, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse conditions: %w", err)
	}
	byID := make(map[string]Condition, len(doc.Conditions))
	for _, c := range doc.Conditions {
		byID[c.ID] = c
	}
	return byID, nil
}
