package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ruleFile is the on-disk shape of an external rule table.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a rule table from a YAML file and compiles it. External
// tables go through the same validation as the built-in one.
func Load(path string) (*Set, error) {
	if path == "" {
		return nil, fmt.Errorf("rule file path not specified")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule file %s: %w", path, err)
	}

	var f ruleFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parsing rule file %s: %w", path, err)
	}

	s, err := New(f.Rules)
	if err != nil {
		return nil, fmt.Errorf("rule file %s: %w", path, err)
	}
	return s, nil
}

// Save writes a rule table to a YAML file, so the built-in table can be
// exported, reviewed, and loaded back.
func Save(path string, s *Set) error {
	if path == "" {
		return fmt.Errorf("rule file path not specified")
	}

	b, err := yaml.Marshal(ruleFile{Rules: s.Rules()})
	if err != nil {
		return fmt.Errorf("encoding rule table: %w", err)
	}

	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("writing rule file %s: %w", path, err)
	}
	return nil
}
