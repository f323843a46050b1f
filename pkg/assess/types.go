// Package assess scores content on the five framework dimensions using
// a compiled rule table and a calibration profile. Scoring is pure and
// deterministic: the same text, rules, and profile always produce the
// same scores.
package assess

import (
	"time"
)

// Metadata describes where a piece of content came from. Fields left
// empty are filled from the profile defaults before scoring.
type Metadata struct {
	Source  string `json:"source" yaml:"source"`
	Author  string `json:"author" yaml:"author"`
	Context string `json:"context" yaml:"context"`
	// Timestamp is when the content was produced, not when it was
	// assessed. Optional.
	Timestamp time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Content is one unit of input to assess.
type Content struct {
	Text     string   `json:"text" yaml:"text"`
	Metadata Metadata `json:"metadata" yaml:"metadata"`
}

// TrustStatus is the tri-state outcome of a Trust Protocol check.
type TrustStatus string

const (
	TrustPass    TrustStatus = "PASS"
	TrustPartial TrustStatus = "PARTIAL"
	TrustFail    TrustStatus = "FAIL"
)

// DimensionScore carries a dimension overall plus its facet breakdown.
// Bonus and Adjustment record how much of the overall came from the
// emergence bonus and the profile's flat calibration shift.
type DimensionScore struct {
	Overall    float64            `json:"overall"`
	Facets     map[string]float64 `json:"facets"`
	Bonus      float64            `json:"bonus,omitempty"`
	Adjustment float64            `json:"adjustment,omitempty"`
}

// TrustScore is the Trust Protocol outcome: one status per component
// and the combined overall.
type TrustScore struct {
	Overall    TrustStatus            `json:"overall"`
	Components map[string]TrustStatus `json:"components"`
}

// EthicsScore is the Ethical Alignment outcome with the evidence that
// produced it.
type EthicsScore struct {
	Overall     float64  `json:"overall"`
	LangsTested []string `json:"langsTested"`
	EOGap       float64  `json:"eoGap"`
	Guardrails  int      `json:"guardrails"`
	Lineage     []string `json:"lineage"`
}

// Resonance Quality levels.
const (
	LevelStrong       = "STRONG"
	LevelAdvanced     = "ADVANCED"
	LevelBreakthrough = "BREAKTHROUGH"
)

// ResonanceScore is the Resonance Quality outcome: the 0-100 score,
// its facet breakdown, and the named level.
type ResonanceScore struct {
	Overall float64            `json:"overall"`
	Facets  map[string]float64 `json:"facets"`
	Level   string             `json:"level"`
}

// AssessmentResult is one complete assessment. ID and Timestamp are
// the only non-deterministic fields.
type AssessmentResult struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Profile   string    `json:"profile"`
	Metadata  Metadata  `json:"metadata"`

	RealityIndex     DimensionScore `json:"realityIndex"`
	TrustProtocol    TrustScore     `json:"trustProtocol"`
	EthicalAlignment EthicsScore    `json:"ethicalAlignment"`
	ResonanceQuality ResonanceScore `json:"resonanceQuality"`
	CanvasParity     DimensionScore `json:"canvasParity"`

	// OverallScore is the weighted 0-100 aggregate.
	OverallScore int `json:"overallScore"`
}
