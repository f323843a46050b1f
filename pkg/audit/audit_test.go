package audit

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

func testResult(t *testing.T, text string) *assess.AssessmentResult {
	t.Helper()
	prof, err := profile.Get(profile.Default)
	require.NoError(t, err)
	e, err := assess.New(rules.Default(), prof,
		assess.WithClock(func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }),
	)
	require.NoError(t, err)
	return e.Evaluate(assess.Content{Text: text})
}

func testScope() Scope {
	return Scope{
		AllowRaw:         false,
		AllowTraining:    false,
		MaxRetentionDays: 90,
		Purpose:          "compliance-audit",
	}
}

func buildTicket(t *testing.T, results ...*assess.AssessmentResult) *ContextBridgeTicket {
	t.Helper()
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	b := NewTicketBuilder(gen,
		WithClock(func() time.Time { return time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC) }),
		WithIDSource(func() string { return "cbt-test-1" }),
	).WithScope(testScope()).WithSigner("assessment-engine")
	for _, r := range results {
		b.AddAssessment(r)
	}
	tk, err := b.Build()
	require.NoError(t, err)
	return tk
}

func TestReceiptsDeriveFromResult(t *testing.T) {
	r := testResult(t, "Verify the evidence against the source. I should note a limitation: "+
		"this is simplified, so you should check the original paper.")
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	set := gen.Receipts(r)

	assert.Equal(t, "golden-2025.1", set.Reality.GoldenVersion)
	assert.InDelta(t, r.RealityIndex.Overall/10, set.Reality.SampleConformance, 1e-9)
	assert.Empty(t, set.Reality.ValidationErrors)

	assert.Equal(t, rules.TrustComponents, set.Trust.EnsembleMembers)
	assert.GreaterOrEqual(t, set.Trust.Confidence, 0.0)
	assert.LessOrEqual(t, set.Trust.Confidence, 1.0)

	assert.NotEmpty(t, set.Ethics.LangsTested)
	assert.GreaterOrEqual(t, set.Ethics.EOGap, 0.0)
	assert.NotEmpty(t, set.Ethics.DatasetLineage)

	assert.True(t, set.Resonance.UnitChecksPassed)
	assert.InDelta(t, r.ResonanceQuality.Overall/100, set.Resonance.NarrativeIntegrityScore, 1e-9)

	assert.Equal(t, rules.Default().Hash(), set.Parity.CodegenHash)
	assert.GreaterOrEqual(t, set.Parity.DocDrift, 0.0)
	assert.InDelta(t, r.CanvasParity.Overall/100, set.Parity.APIConsistencyScore, 1e-9)
}

func TestTrustConfidenceBuckets(t *testing.T) {
	cases := []struct {
		status     assess.TrustStatus
		confidence float64
		bucket     string
		abstained  bool
	}{
		{assess.TrustPass, 0.95, "0.9-1.0", false},
		{assess.TrustPartial, 0.62, "0.6-0.7", true},
		{assess.TrustFail, 0.20, "0.2-0.3", false},
	}
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	for _, tc := range cases {
		r := &assess.AssessmentResult{
			TrustProtocol:    assess.TrustScore{Overall: tc.status},
			EthicalAlignment: assess.EthicsScore{LangsTested: []string{"en"}},
		}
		set := gen.Receipts(r)
		assert.InDelta(t, tc.confidence, set.Trust.Confidence, 1e-9, string(tc.status))
		assert.Equal(t, tc.bucket, set.Trust.CalibrationBucket, string(tc.status))
		assert.Equal(t, tc.abstained, set.Trust.Abstained, string(tc.status))
	}
}

func TestReceiptJSONKeys(t *testing.T) {
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	set := gen.Receipts(testResult(t, "some text"))

	b, err := json.Marshal(set)
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	keys := map[string][]string{
		"reality":   {"schemas_passed", "golden_version", "sample_conformance", "validation_errors"},
		"trust":     {"ensemble_members", "confidence", "calibration_bucket", "abstained"},
		"ethics":    {"langs_tested", "eo_gap", "safety_guardrails", "dataset_lineage", "bias_metrics"},
		"resonance": {"ui_contracts_verified", "unit_checks_passed", "narrative_integrity_score"},
		"parity":    {"spec_version", "codegen_hash", "doc_drift", "api_consistency_score"},
	}
	for dim, want := range keys {
		require.Contains(t, decoded, dim)
		for _, k := range want {
			assert.Contains(t, decoded[dim], k, "%s.%s", dim, k)
		}
	}
}

func TestTicketBuild(t *testing.T) {
	r1 := testResult(t, "The goal is to help you understand the method.")
	r2 := testResult(t, "Verify the evidence; note the limitation.")
	tk := buildTicket(t, r1, r2)

	assert.Equal(t, "cbt-test-1", tk.ID)
	assert.Equal(t, TicketVersion, tk.TicketVersion)
	assert.Equal(t, 2, tk.Summary.Assessments)
	assert.Equal(t, []string{"default"}, tk.Summary.Profiles)
	assert.Len(t, tk.Receipts.Reality, 2)
	assert.Len(t, tk.Receipts.Parity, 2)
	assert.Equal(t, testScope(), tk.Scope)
	require.Len(t, tk.TransparencyLog, 3)
	for _, e := range tk.TransparencyLog {
		assert.Equal(t, tk.ID, e.CBTID)
	}
	require.Contains(t, tk.Signatures, "assessment-engine")
	assert.Contains(t, tk.Signatures["assessment-engine"], "sha256:")
}

func TestTicketBuildErrors(t *testing.T) {
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	r := testResult(t, "hello")

	_, err := NewTicketBuilder(gen).WithScope(testScope()).WithSigner("s").Build()
	assert.ErrorContains(t, err, "no assessments")

	_, err = NewTicketBuilder(gen).WithSigner("s").AddAssessment(r).Build()
	assert.ErrorContains(t, err, "scope not set")

	s := testScope()
	s.Purpose = ""
	_, err = NewTicketBuilder(gen).WithScope(s).WithSigner("s").AddAssessment(r).Build()
	assert.ErrorContains(t, err, "purpose")

	s = testScope()
	s.MaxRetentionDays = 0
	_, err = NewTicketBuilder(gen).WithScope(s).WithSigner("s").AddAssessment(r).Build()
	assert.ErrorContains(t, err, "retention")

	_, err = NewTicketBuilder(gen).WithScope(testScope()).AddAssessment(r).Build()
	assert.ErrorContains(t, err, "no signers")
}

func TestValidateBundleAcceptsBuiltTicket(t *testing.T) {
	tk := buildTicket(t, testResult(t, "hello there"))
	res := ValidateBundle(tk)
	assert.True(t, res.Valid, "%v", res.Issues)
	assert.Empty(t, res.Issues)
}

func TestValidateBundleDetectsTampering(t *testing.T) {
	tamper := func(fn func(tk *ContextBridgeTicket)) ValidationResult {
		tk := buildTicket(t, testResult(t, "hello there"))
		fn(tk)
		return ValidateBundle(tk)
	}

	res := tamper(func(tk *ContextBridgeTicket) { tk.Summary.MeanOverall += 5 })
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)

	res = tamper(func(tk *ContextBridgeTicket) { tk.TicketVersion = "" })
	assert.False(t, res.Valid)

	res = tamper(func(tk *ContextBridgeTicket) { tk.Receipts.Ethics[0].LangsTested = nil })
	assert.False(t, res.Valid)

	res = tamper(func(tk *ContextBridgeTicket) { tk.Signatures = nil })
	assert.False(t, res.Valid)

	res = tamper(func(tk *ContextBridgeTicket) {
		tk.TransparencyLog[0], tk.TransparencyLog[1] = tk.TransparencyLog[1], tk.TransparencyLog[0]
	})
	assert.False(t, res.Valid)
}

func TestValidateBundleScope(t *testing.T) {
	tk := buildTicket(t, testResult(t, "hello"))

	// Over-limit retention is a hard issue even with a valid signature,
	// so rebuild the ticket with the bad scope.
	gen := NewGenerator(DefaultProvenance(rules.Default()))
	longScope := testScope()
	longScope.MaxRetentionDays = 400
	bad, err := NewTicketBuilder(gen).
		WithScope(longScope).WithSigner("s").
		AddAssessment(testResult(t, "hello")).Build()
	require.NoError(t, err)
	res := ValidateBundle(bad)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)

	// Training without raw access is inconsistent.
	inconsistent := testScope()
	inconsistent.AllowTraining = true
	bad, err = NewTicketBuilder(gen).
		WithScope(inconsistent).WithSigner("s").
		AddAssessment(testResult(t, "hello")).Build()
	require.NoError(t, err)
	res = ValidateBundle(bad)
	assert.False(t, res.Valid)

	// Long raw retention draws a recommendation, not an issue.
	rawScope := Scope{AllowRaw: true, MaxRetentionDays: 180, Purpose: "research"}
	withRaw, err := NewTicketBuilder(gen).
		WithScope(rawScope).WithSigner("s").
		AddAssessment(testResult(t, "hello")).Build()
	require.NoError(t, err)
	res = ValidateBundle(withRaw)
	assert.True(t, res.Valid)
	assert.NotEmpty(t, res.Recommendations)

	res = ValidateBundle(tk)
	assert.True(t, res.Valid)
}

func TestValidateNilTicket(t *testing.T) {
	res := ValidateBundle(nil)
	assert.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)
}

func TestTicketSignatureDeterminism(t *testing.T) {
	r := testResult(t, "same content")
	a := buildTicket(t, r)
	b := buildTicket(t, r)
	assert.Equal(t, a.Signatures, b.Signatures)
}
