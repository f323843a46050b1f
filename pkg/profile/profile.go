// Package profile defines calibration profiles: named bundles of base
// scores, rule-group weights, thresholds, and adjustment constants.
// Swapping profiles changes scoring behavior without code changes; the
// four shipped behaviors are data, not code paths.
package profile

import (
	"fmt"
	"math"

	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// Trust Protocol combination rules, selectable per profile.
const (
	// CombineAnyFail: any FAIL fails overall, any PARTIAL holds it at
	// PARTIAL, otherwise PASS.
	CombineAnyFail = "any-fail"
	// CombineStrict: any FAIL fails overall; two PASSes pass it.
	CombineStrict = "strict"
	// CombineLenient: two FAILs to fail overall, one PASS to pass.
	CombineLenient = "lenient"
)

// Dimensions carrying aggregation weights.
const (
	WeightReality = "reality"
	WeightTrust   = "trust"
	WeightParity  = "parity"
)

// Adjustment constant names. Missing entries read as zero.
const (
	AdjustReality = "reality"
	AdjustParity  = "parity"
	AdjustOverall = "overall"

	AdjustCoherenceMinSentences = "coherence_min_sentences"

	AdjustEthicsGapBase         = "ethics_gap_base"
	AdjustEthicsGapPerFlag      = "ethics_gap_per_flag"
	AdjustEthicsGapWeight       = "ethics_gap_weight"
	AdjustEthicsCoverageWeight  = "ethics_coverage_weight"
	AdjustEthicsCoverageBase    = "ethics_coverage_base"
	AdjustEthicsGuardrailTarget = "ethics_guardrail_target"
	AdjustEthicsHarmPenalty     = "ethics_harm_penalty"
)

const weightTolerance = 1e-6

// Tuning is the profile-side knob for one rule group: the additive
// weight of each firing (or each occurrence, for counting rules) and an
// optional cap on the total contribution of a counting rule. A group
// absent from the profile is inactive.
type Tuning struct {
	Weight float64 `yaml:"weight" json:"weight"`
	Cap    float64 `yaml:"cap,omitempty" json:"cap,omitempty"`
}

// Range bounds a facet score.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// TrustConfig holds the Trust Protocol thresholds and combination rule.
type TrustConfig struct {
	// PassMin is the matching-term count at or above which a component
	// is PASS; PartialMin the count for PARTIAL; below that, FAIL.
	PassMin    int `yaml:"pass_min" json:"pass_min"`
	PartialMin int `yaml:"partial_min" json:"partial_min"`
	// NegativeFails forces a component to FAIL when any penalty rule
	// for it fires, regardless of the positive count.
	NegativeFails bool `yaml:"negative_fails" json:"negative_fails"`
	// Combine names the component-combination rule.
	Combine string `yaml:"combine" json:"combine"`
}

// EmergenceConfig bounds the emergence bonus.
type EmergenceConfig struct {
	Cap float64 `yaml:"cap" json:"cap"`
}

// ResonanceConfig maps the 0-100 resonance score to a named level.
type ResonanceConfig struct {
	AdvancedMin     float64 `yaml:"advanced_min" json:"advanced_min"`
	BreakthroughMin float64 `yaml:"breakthrough_min" json:"breakthrough_min"`
}

// EthicsConfig carries the static ethics evidence a profile vouches for.
type EthicsConfig struct {
	Langs   []string `yaml:"langs" json:"langs"`
	Lineage []string `yaml:"lineage" json:"lineage"`
}

// Defaults substitute for missing input metadata fields.
type Defaults struct {
	Source  string `yaml:"source" json:"source"`
	Author  string `yaml:"author" json:"author"`
	Context string `yaml:"context" json:"context"`
}

// Profile is a self-contained calibration: every tunable constant of
// the scoring engine in one value. Immutable once loaded.
type Profile struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`

	// FacetBases keys are "<dimension>.<facet>".
	FacetBases map[string]float64 `yaml:"facet_bases" json:"facet_bases"`
	// FacetCaps overrides the dimension-scale default bounds per facet.
	FacetCaps map[string]Range `yaml:"facet_caps,omitempty" json:"facet_caps,omitempty"`

	Groups map[string]Tuning `yaml:"groups" json:"groups"`

	Trust     TrustConfig     `yaml:"trust" json:"trust"`
	Emergence EmergenceConfig `yaml:"emergence" json:"emergence"`

	// Weights combine reality, trust, and parity into the overall
	// score; they must sum to 1.0.
	Weights map[string]float64 `yaml:"weights" json:"weights"`
	// TrustScores maps PASS/PARTIAL/FAIL to an overall-score input.
	TrustScores map[string]float64 `yaml:"trust_scores" json:"trust_scores"`

	Adjustments map[string]float64 `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`

	Resonance ResonanceConfig `yaml:"resonance" json:"resonance"`
	Ethics    EthicsConfig    `yaml:"ethics" json:"ethics"`
	Defaults  Defaults        `yaml:"defaults" json:"defaults"`
}

// Base returns the starting score for a facet, zero when unset.
func (p *Profile) Base(d rules.Dimension, facet string) float64 {
	return p.FacetBases[string(d)+"."+facet]
}

// Cap returns the clamp range for a facet: the profile override when
// present, otherwise the dimension's natural scale.
func (p *Profile) Cap(d rules.Dimension, facet string) Range {
	if r, ok := p.FacetCaps[string(d)+"."+facet]; ok {
		return r
	}
	return ScaleFor(d)
}

// Adjust returns a named adjustment constant, zero when unset.
func (p *Profile) Adjust(name string) float64 {
	return p.Adjustments[name]
}

// Group returns the tuning for a rule group and whether it is active.
func (p *Profile) Group(name string) (Tuning, bool) {
	t, ok := p.Groups[name]
	if !ok || t.Weight == 0 {
		return Tuning{}, false
	}
	return t, true
}

// ScaleFor returns the natural score range of a dimension.
func ScaleFor(d rules.Dimension) Range {
	switch d {
	case rules.Reality:
		return Range{Min: 0, Max: 10}
	case rules.Ethics:
		return Range{Min: 0, Max: 5}
	default:
		return Range{Min: 0, Max: 100}
	}
}

// Validate checks a profile for structural validity against a rule
// set. Violations are configuration errors: fatal at load time, never
// surfaced during evaluation.
func Validate(p *Profile, set *rules.Set) error {
	bad := func(field, reason string) error {
		return &rules.ConfigError{Section: "profile " + p.Name, Field: field, Reason: reason}
	}

	if p.Name == "" {
		return &rules.ConfigError{Section: "profile", Reason: "missing name"}
	}

	// Aggregation weights: exactly the three dimensions, summing to 1.
	sum := 0.0
	for _, k := range []string{WeightReality, WeightTrust, WeightParity} {
		w, ok := p.Weights[k]
		if !ok {
			return bad("weights", fmt.Sprintf("missing %q", k))
		}
		if w < 0 {
			return bad("weights", fmt.Sprintf("%q is negative", k))
		}
		sum += w
	}
	if len(p.Weights) != 3 {
		return bad("weights", "unknown dimension key")
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return bad("weights", fmt.Sprintf("sum %.6f, want 1.0", sum))
	}

	switch p.Trust.Combine {
	case CombineAnyFail, CombineStrict, CombineLenient:
	default:
		return bad("trust.combine", fmt.Sprintf("unknown combination rule %q", p.Trust.Combine))
	}
	if p.Trust.PartialMin < 0 || p.Trust.PassMin < p.Trust.PartialMin {
		return bad("trust", "thresholds must satisfy pass_min >= partial_min >= 0")
	}

	for _, status := range []string{"PASS", "PARTIAL", "FAIL"} {
		v, ok := p.TrustScores[status]
		if !ok {
			return bad("trust_scores", fmt.Sprintf("missing %q", status))
		}
		if v < 0 || v > 100 {
			return bad("trust_scores", fmt.Sprintf("%q out of [0,100]", status))
		}
	}

	if p.Emergence.Cap < 0 {
		return bad("emergence.cap", "must be non-negative")
	}

	for d, facets := range rules.ScoredFacets {
		for _, f := range facets {
			key := string(d) + "." + f
			base, ok := p.FacetBases[key]
			if !ok {
				return bad("facet_bases", fmt.Sprintf("missing %q", key))
			}
			c := p.Cap(d, f)
			if c.Min > c.Max {
				return bad("facet_caps", fmt.Sprintf("%q has min > max", key))
			}
			if base < c.Min || base > c.Max {
				return bad("facet_bases", fmt.Sprintf("%q outside its cap range", key))
			}
		}
	}

	for g := range p.Groups {
		if !set.HasGroup(g) {
			return bad("groups", fmt.Sprintf("unknown rule group %q", g))
		}
	}
	for g, t := range p.Groups {
		if t.Weight < 0 || t.Cap < 0 {
			return bad("groups", fmt.Sprintf("%q has negative tuning", g))
		}
	}

	if p.Resonance.AdvancedMin <= 0 || p.Resonance.BreakthroughMin < p.Resonance.AdvancedMin {
		return bad("resonance", "level thresholds must satisfy 0 < advanced_min <= breakthrough_min")
	}

	if len(p.Ethics.Langs) == 0 {
		return bad("ethics.langs", "must not be empty")
	}

	return nil
}
