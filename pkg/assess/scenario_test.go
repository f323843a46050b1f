package assess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
)

const educationalText = `Let me explain how the transformer architecture works, and what purpose the attention mechanism serves. The goal is to help you, the reader, understand the core algorithm. According to Vaswani et al. (2017), the system can process every embedding in parallel; however, the method also depends on careful analysis of research data. Therefore, each neural layer builds on the last, because attention weights are learned. I should note a limitation: this simplified explanation cannot cover the full mathematics, so you should verify the evidence against the original source. Does this help you and other people understand the model? If any question remains, ask a person on your team, or discuss it with another human user to clarify.`

const misinfoText = `Doctors don't want you to know this one simple trick that cures cancer and prevents all diseases! Big pharma will do anything to keep their business. This miracle cure has guaranteed results with no side effects. Wake up, people!`

const creativeText = `The old city hummed as dusk painted the rooftops. 'Follow the river,' the lantern-keeper whispered, and her voice swirling like a crystalline bell. I could feel hope rise in my heart, as if the whole journey were a dream! Then the glowing stars wondered with us, shimmering while we walked. What a story!`

func TestEducationalContent(t *testing.T) {
	e := testEngine(t, profile.Default)
	r := e.Evaluate(Content{Text: educationalText})

	assert.GreaterOrEqual(t, r.RealityIndex.Overall, 7.0)
	assert.LessOrEqual(t, r.RealityIndex.Overall, 10.0)
	assert.Equal(t, TrustPass, r.TrustProtocol.Overall)
	assert.GreaterOrEqual(t, r.CanvasParity.Overall, 80.0)
	assert.LessOrEqual(t, r.CanvasParity.Overall, 100.0)
	assert.GreaterOrEqual(t, r.EthicalAlignment.Overall, 3.5)
	assert.Equal(t, LevelStrong, r.ResonanceQuality.Level)
}

func TestMisinformationContent(t *testing.T) {
	e := testEngine(t, profile.Default)
	r := e.Evaluate(Content{Text: misinfoText})

	assert.GreaterOrEqual(t, r.RealityIndex.Overall, 0.0)
	assert.LessOrEqual(t, r.RealityIndex.Overall, 3.0)
	assert.Equal(t, TrustFail, r.TrustProtocol.Overall)
	assert.LessOrEqual(t, r.EthicalAlignment.Overall, 2.5)
	assert.Zero(t, r.EthicalAlignment.Guardrails)
	assert.Less(t, r.OverallScore, 50)
}

func TestCreativeContent(t *testing.T) {
	e := testEngine(t, profile.Default)
	r := e.Evaluate(Content{Text: creativeText})

	assert.GreaterOrEqual(t, r.ResonanceQuality.Overall, 75.0)
	assert.Equal(t, LevelAdvanced, r.ResonanceQuality.Level)
	assert.Greater(t,
		r.ResonanceQuality.Facets["creative_expression"],
		r.ResonanceQuality.Facets["narrative_flow"])
}

func TestEmptyContent(t *testing.T) {
	for _, name := range profile.Names() {
		e := testEngine(t, name)
		r := e.Evaluate(Content{Text: ""})

		assert.NotNil(t, r, name)
		assert.Len(t, r.RealityIndex.Facets, 4, name)
		assert.Len(t, r.TrustProtocol.Components, 3, name)
		assert.Len(t, r.ResonanceQuality.Facets, 3, name)
		assert.Len(t, r.CanvasParity.Facets, 4, name)
		assert.GreaterOrEqual(t, r.OverallScore, 0, name)
		assert.LessOrEqual(t, r.OverallScore, 100, name)
	}
}

func TestEmptyContentDefaultProfile(t *testing.T) {
	e := testEngine(t, profile.Default)
	r := e.Evaluate(Content{Text: ""})

	// Bases only: reality facets 5/5/5/7, trust PARTIAL across the
	// board, parity facets at 50.
	assert.InDelta(t, 5.5, r.RealityIndex.Overall, 1e-9)
	assert.Equal(t, TrustPartial, r.TrustProtocol.Overall)
	assert.InDelta(t, 50.0, r.CanvasParity.Overall, 1e-9)
}

func TestVeryLongContent(t *testing.T) {
	e := testEngine(t, profile.Default)
	text := strings.Repeat("The system helps you understand the process. ", 10_000)

	var r *AssessmentResult
	require.NotPanics(t, func() { r = e.Evaluate(Content{Text: text}) })
	assert.GreaterOrEqual(t, r.OverallScore, 0)
	assert.LessOrEqual(t, r.OverallScore, 100)
}

func TestPunctuationOnlyContent(t *testing.T) {
	e := testEngine(t, profile.Default)
	var r *AssessmentResult
	require.NotPanics(t, func() { r = e.Evaluate(Content{Text: "?!.,;:-()[]{}..."}) })
	assert.GreaterOrEqual(t, r.OverallScore, 0)
	assert.LessOrEqual(t, r.OverallScore, 100)
}

func TestRepeatedEvaluationConsistency(t *testing.T) {
	e := testEngine(t, profile.Default)

	// The engine fixes the clock and ID source, so every field of the
	// result must be bit-identical across calls, facets included.
	first := e.Evaluate(Content{Text: educationalText})
	for i := 0; i < 4; i++ {
		assert.Equal(t, first, e.Evaluate(Content{Text: educationalText}))
	}
}

func TestProfilesRankConsistently(t *testing.T) {
	// Every profile should still separate good content from bad.
	for _, name := range profile.Names() {
		e := testEngine(t, name)
		good := e.Evaluate(Content{Text: educationalText})
		bad := e.Evaluate(Content{Text: misinfoText})
		assert.Greater(t, good.RealityIndex.Overall, bad.RealityIndex.Overall, name)
		assert.Greater(t, good.OverallScore, bad.OverallScore, name)
	}
}
