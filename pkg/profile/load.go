package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// Load reads a profile from a YAML file and validates it against the
// rule set.
func Load(path string, set *rules.Set) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	if err := Validate(&p, set); err != nil {
		return nil, err
	}
	return &p, nil
}

// Resolve maps a name or path to a profile: a shipped profile name
// resolves directly, anything containing a path separator or a .yaml
// suffix is loaded from disk.
func Resolve(nameOrPath string, set *rules.Set) (*Profile, error) {
	if strings.ContainsAny(nameOrPath, `/\`) ||
		strings.HasSuffix(nameOrPath, ".yaml") || strings.HasSuffix(nameOrPath, ".yml") {
		return Load(nameOrPath, set)
	}
	return Get(nameOrPath)
}

// Save writes a profile as YAML, mainly so a shipped profile can be
// dumped, tweaked, and loaded back.
func Save(path string, p *Profile) error {
	b, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", p.Name, err)
	}
	return os.WriteFile(path, b, 0600)
}
