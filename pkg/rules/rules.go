// Package rules holds the declarative pattern rule table used by the
// assessment engine. Rules are static configuration: loaded once,
// compiled once, and shared read-only across evaluations.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Dimension identifies one of the five assessment dimensions.
type Dimension string

const (
	Reality   Dimension = "reality"
	Trust     Dimension = "trust"
	Ethics    Dimension = "ethics"
	Resonance Dimension = "resonance"
	Parity    Dimension = "parity"
)

// Kind determines how a matched rule contributes to a facet score.
type Kind string

const (
	// Bonus fires at most once per evaluation and adds its weight.
	Bonus Kind = "bonus"
	// Penalty fires at most once per evaluation and subtracts its weight.
	Penalty Kind = "penalty"
	// Counted contributes once per occurrence, up to an optional cap.
	Counted Kind = "counted"
)

// Reality Index facets.
const (
	FacetMission      = "mission_alignment"
	FacetCoherence    = "contextual_coherence"
	FacetTechnical    = "technical_accuracy"
	FacetAuthenticity = "authenticity"
	// FacetEmergence holds the emergence-bonus pattern families.
	FacetEmergence = "emergence"
)

// Trust Protocol components.
const (
	FacetVerification = "verification_methods"
	FacetBoundary     = "boundary_maintenance"
	FacetSecurity     = "security_awareness"
)

// Ethics evidence facets.
const (
	FacetGuardrails = "guardrails"
	FacetHarmFlags  = "harm_flags"
)

// Resonance Quality facets.
const (
	FacetNarrativeFlow = "narrative_flow"
	FacetEngagement    = "emotional_engagement"
	FacetCreative      = "creative_expression"
)

// Canvas Parity facets.
const (
	FacetAgency        = "human_agency"
	FacetContribution  = "ai_contribution"
	FacetTransparency  = "transparency"
	FacetCollaboration = "collaboration_quality"
)

// ScoredFacets lists, per dimension, the facets that carry a base score
// and fold into the dimension overall. Evidence-only facets (emergence,
// trust components, ethics flags) are not listed here.
var ScoredFacets = map[Dimension][]string{
	Reality:   {FacetMission, FacetCoherence, FacetTechnical, FacetAuthenticity},
	Resonance: {FacetNarrativeFlow, FacetEngagement, FacetCreative},
	Parity:    {FacetAgency, FacetContribution, FacetTransparency, FacetCollaboration},
}

// TrustComponents lists the three boundary components in evaluation order.
var TrustComponents = []string{FacetVerification, FacetBoundary, FacetSecurity}

// Rule is one declarative pattern rule. Pattern is a literal substring
// unless Regex is set. Matching is case-insensitive for both forms.
type Rule struct {
	Name      string    `yaml:"name" json:"name"`
	Group     string    `yaml:"group" json:"group"`
	Dimension Dimension `yaml:"dimension" json:"dimension"`
	Facet     string    `yaml:"facet" json:"facet"`
	Pattern   string    `yaml:"pattern" json:"pattern"`
	Regex     bool      `yaml:"regex,omitempty" json:"regex,omitempty"`
	Kind      Kind      `yaml:"kind" json:"kind"`
	// MinCount is the occurrence threshold: the rule fires only when
	// the pattern appears at least MinCount times. Zero means one.
	// For Counted rules the full occurrence count still applies once
	// the threshold is met.
	MinCount int `yaml:"min_count,omitempty" json:"min_count,omitempty"`
}

// Match is the result of one rule firing against a piece of content.
// Count is 1 for fire-once kinds and the occurrence count for Counted.
type Match struct {
	Rule  Rule
	Count int
}

type compiledRule struct {
	rule Rule
	re   *regexp.Regexp // nil for literal rules
}

// Set is an immutable, compiled rule table. Safe for concurrent use.
type Set struct {
	compiled []compiledRule
	groups   map[string]bool
}

// New compiles and validates a rule table. Rule order is preserved so
// that evaluation output is deterministic.
func New(list []Rule) (*Set, error) {
	if len(list) == 0 {
		return nil, &ConfigError{Section: "rules", Reason: "rule table is empty"}
	}

	s := &Set{
		compiled: make([]compiledRule, 0, len(list)),
		groups:   make(map[string]bool, len(list)),
	}

	seen := make(map[string]bool, len(list))
	// A group's total carries one sign, so penalty rules may not share
	// a group with bonus or counted rules.
	groupPenalty := make(map[string]bool, len(list))
	for _, r := range list {
		if err := validateRule(r); err != nil {
			return nil, err
		}
		if p, ok := groupPenalty[r.Group]; ok && p != (r.Kind == Penalty) {
			return nil, &ConfigError{Section: "rules", Field: r.Name, Reason: fmt.Sprintf("group %q mixes penalty and non-penalty rules", r.Group)}
		}
		groupPenalty[r.Group] = r.Kind == Penalty
		if seen[r.Name] {
			return nil, &ConfigError{Section: "rules", Field: r.Name, Reason: "duplicate rule name"}
		}
		seen[r.Name] = true

		cr := compiledRule{rule: r}
		if r.Regex {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, &ConfigError{Section: "rules", Field: r.Name, Reason: fmt.Sprintf("invalid pattern: %v", err)}
			}
			cr.re = re
		} else {
			// Literal rules are matched against lowered text.
			cr.rule.Pattern = strings.ToLower(r.Pattern)
		}
		s.compiled = append(s.compiled, cr)
		s.groups[r.Group] = true
	}

	return s, nil
}

func validateRule(r Rule) error {
	bad := func(reason string) error {
		return &ConfigError{Section: "rules", Field: r.Name, Reason: reason}
	}
	if r.Name == "" {
		return &ConfigError{Section: "rules", Reason: "rule without a name"}
	}
	if r.Group == "" {
		return bad("missing group")
	}
	if r.Pattern == "" {
		return bad("missing pattern")
	}
	switch r.Dimension {
	case Reality, Trust, Ethics, Resonance, Parity:
	default:
		return bad(fmt.Sprintf("unknown dimension %q", r.Dimension))
	}
	switch r.Kind {
	case Bonus, Penalty, Counted:
	default:
		return bad(fmt.Sprintf("unknown kind %q", r.Kind))
	}
	if r.Facet == "" {
		return bad("missing facet")
	}
	if r.MinCount < 0 {
		return bad("negative min_count")
	}
	return nil
}

// Evaluate runs every rule against the content once and returns the
// matches in rule-declaration order. It never fails: content may be
// empty, arbitrarily long, or arbitrary bytes.
func (s *Set) Evaluate(text string) []Match {
	lower := strings.ToLower(text)

	out := make([]Match, 0, 32)
	for _, cr := range s.compiled {
		n := cr.occurrences(lower)
		min := cr.rule.MinCount
		if min < 1 {
			min = 1
		}
		if n < min {
			continue
		}
		if cr.rule.Kind == Counted {
			out = append(out, Match{Rule: cr.rule, Count: n})
		} else {
			out = append(out, Match{Rule: cr.rule, Count: 1})
		}
	}
	return out
}

func (cr compiledRule) occurrences(lower string) int {
	if cr.re != nil {
		return len(cr.re.FindAllStringIndex(lower, -1))
	}
	return strings.Count(lower, cr.rule.Pattern)
}

// Rules returns a copy of the rule table for auditing. The copy is
// sorted the way the rules were declared.
func (s *Set) Rules() []Rule {
	out := make([]Rule, 0, len(s.compiled))
	for _, cr := range s.compiled {
		out = append(out, cr.rule)
	}
	return out
}

// HasGroup reports whether any rule belongs to the named group.
func (s *Set) HasGroup(name string) bool {
	return s.groups[name]
}

// Groups returns the sorted list of distinct rule-group names.
func (s *Set) Groups() []string {
	out := make([]string, 0, len(s.groups))
	for g := range s.groups {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// Hash returns a stable SHA-256 over the canonical JSON encoding of the
// rule table. Two processes loading the same table produce the same
// hash, which is what makes the parity receipt's codegen_hash auditable.
func (s *Set) Hash() string {
	b, err := json.Marshal(s.Rules())
	if err != nil {
		// Rule is a plain value type; this cannot happen at runtime.
		panic(fmt.Sprintf("rules: marshal failed: %v", err))
	}
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// ConfigError reports a structurally invalid rule table or profile.
// It is raised at load time only, never during evaluation.
type ConfigError struct {
	Section string
	Field   string
	Reason  string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid %s configuration: %s", e.Section, e.Reason)
	}
	return fmt.Sprintf("invalid %s configuration: %s: %s", e.Section, e.Field, e.Reason)
}
