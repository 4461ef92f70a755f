// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package keywords

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadRules reads a custom rule table from a YAML file: a list of
// {pattern, label} entries. Entries missing either field are rejected so
// a typo in the file surfaces immediately instead of silently matching
// nothing.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}

	var rules []Rule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file %s: %w", path, err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}
	for i, r := range rules {
		if r.Pattern == "" || r.Label == "" {
			return nil, fmt.Errorf("rules file %s: entry %d missing pattern or label", path, i+1)
		}
	}
	return rules, nil
}
