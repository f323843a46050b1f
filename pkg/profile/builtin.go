package profile

import (
	"fmt"
	"sort"
	"sync"

	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// Shipped profile names.
const (
	Default    = "default"
	Enhanced   = "enhanced"
	Balanced   = "balanced"
	Calibrated = "calibrated"
)

var (
	builtinOnce sync.Once
	builtins    map[string]*Profile
)

// Get returns a shipped profile by name.
func Get(name string) (*Profile, error) {
	p, ok := builtinProfiles()[name]
	if !ok {
		return nil, fmt.Errorf("unknown profile %q (shipped: %v)", name, Names())
	}
	return p, nil
}

// Names lists the shipped profile names, sorted.
func Names() []string {
	m := builtinProfiles()
	out := make([]string, 0, len(m))
	for n := range m {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func builtinProfiles() map[string]*Profile {
	builtinOnce.Do(func() {
		builtins = map[string]*Profile{
			Default:    defaultProfile(),
			Enhanced:   enhancedProfile(),
			Balanced:   balancedProfile(),
			Calibrated: calibratedProfile(),
		}
		for name, p := range builtins {
			if err := Validate(p, rules.Default()); err != nil {
				panic(fmt.Sprintf("shipped profile %s: %v", name, err))
			}
		}
	})
	return builtins
}

// Constants shared by every shipped profile. The ethics blend and the
// resonance/well-known evidence lists were not varied across the
// original calibration levels.
func commonAdjustments() map[string]float64 {
	return map[string]float64{
		AdjustEthicsGapBase:         0.06,
		AdjustEthicsGapPerFlag:      0.05,
		AdjustEthicsGapWeight:       0.5,
		AdjustEthicsCoverageWeight:  0.5,
		AdjustEthicsCoverageBase:    0.7,
		AdjustEthicsGuardrailTarget: 4,
		AdjustEthicsHarmPenalty:     0.75,
	}
}

func commonEthics() EthicsConfig {
	return EthicsConfig{
		Langs:   []string{"en"},
		Lineage: []string{"curated_rule_table", "public_fixture_corpus"},
	}
}

func commonDefaults() Defaults {
	return Defaults{Source: "unknown", Author: "unknown", Context: "general"}
}

func commonResonance() ResonanceConfig {
	return ResonanceConfig{AdvancedMin: 75, BreakthroughMin: 90}
}

// resonanceGroups tune the Resonance Quality rules, identical across
// shipped profiles.
func resonanceGroups(g map[string]Tuning) {
	g["resonance.flow-connectives"] = Tuning{Weight: 2, Cap: 10}
	g["resonance.story-markers"] = Tuning{Weight: 5}
	g["resonance.emotion-terms"] = Tuning{Weight: 4}
	g["resonance.exclamations"] = Tuning{Weight: 3, Cap: 9}
	g["resonance.imagery"] = Tuning{Weight: 6, Cap: 30}
	g["resonance.dialogue"] = Tuning{Weight: 5}
	g["resonance.figurative"] = Tuning{Weight: 4}
}

func ethicsGroups(g map[string]Tuning) {
	g["ethics.guardrails"] = Tuning{Weight: 1}
	g["ethics.harm-flags"] = Tuning{Weight: 1}
}

// misinfoPenalties are active in every profile: unsupported health
// claims and conspiracy framing drag the Reality Index hard.
func misinfoPenalties(g map[string]Tuning) {
	g["technical.unsupported-claims"] = Tuning{Weight: 3}
	g["authenticity.conspiracy"] = Tuning{Weight: 3}
}

func bases(mission, coherence, technical, authenticity, parity, resonance float64) map[string]float64 {
	return map[string]float64{
		"reality." + rules.FacetMission:      mission,
		"reality." + rules.FacetCoherence:    coherence,
		"reality." + rules.FacetTechnical:    technical,
		"reality." + rules.FacetAuthenticity: authenticity,

		"parity." + rules.FacetAgency:        parity,
		"parity." + rules.FacetContribution:  parity,
		"parity." + rules.FacetTransparency:  parity,
		"parity." + rules.FacetCollaboration: parity,

		"resonance." + rules.FacetNarrativeFlow: resonance,
		"resonance." + rules.FacetEngagement:    resonance,
		"resonance." + rules.FacetCreative:      resonance,
	}
}

// defaultProfile reproduces the original term-list detection: generic
// vocabulary lists, negative-term trust failures, 40/30/30 weighting.
func defaultProfile() *Profile {
	g := map[string]Tuning{
		"mission.goal-terms":      {Weight: 0.5},
		"mission.alignment-terms": {Weight: 0.5},

		"coherence.connectives": {Weight: 0.3},

		"technical.basic-terms":  {Weight: 0.3},
		"technical.numeric-data": {Weight: 1.0},
		"technical.citations":    {Weight: 1.5},

		"authenticity.generic-phrases":  {Weight: 0.5},
		"authenticity.specific-details": {Weight: 1.0},
		"authenticity.first-person":     {Weight: 0.5},

		"verification.evidence-terms": {Weight: 1},
		"verification.negative-terms": {Weight: 1},
		"verification.misinfo-claims": {Weight: 1},
		"boundary.limit-terms":        {Weight: 1},
		"boundary.negative-terms":     {Weight: 1},
		"security.safety-terms":       {Weight: 1},
		"security.negative-terms":     {Weight: 1},

		"agency.human-terms":           {Weight: 3},
		"agency.questions":             {Weight: 10, Cap: 10},
		"contribution.ai-terms":        {Weight: 3},
		"transparency.marker-terms":    {Weight: 3},
		"transparency.acknowledgments": {Weight: 10},
		"collaboration.collab-terms":   {Weight: 3},
		"collaboration.questions":      {Weight: 10, Cap: 10},
	}
	misinfoPenalties(g)
	ethicsGroups(g)
	resonanceGroups(g)

	adj := commonAdjustments()
	adj[AdjustCoherenceMinSentences] = 3

	return &Profile{
		Name:        Default,
		Description: "Original term-list detection with strict negative-term trust checks.",
		FacetBases:  bases(5.0, 5.0, 5.0, 7.0, 50, 60),
		Groups:      g,
		Trust: TrustConfig{
			PassMin:       2,
			PartialMin:    0,
			NegativeFails: true,
			Combine:       CombineAnyFail,
		},
		Emergence:   EmergenceConfig{Cap: 0},
		Weights:     map[string]float64{WeightReality: 0.4, WeightTrust: 0.3, WeightParity: 0.3},
		TrustScores: map[string]float64{"PASS": 100, "PARTIAL": 50, "FAIL": 0},
		Adjustments: adj,
		Resonance:   commonResonance(),
		Ethics:      commonEthics(),
		Defaults:    commonDefaults(),
	}
}

// patternGroups are the regex-driven groups shared by the enhanced,
// balanced, and calibrated profiles, at the given intensity. scale
// distinguishes the moderated (balanced) tuning from the full one.
func patternGroups(full bool) map[string]Tuning {
	if full {
		return map[string]Tuning{
			"mission.direct-address":   {Weight: 0.8},
			"mission.contextual-goals": {Weight: 1.0},

			"coherence.flow-indicators": {Weight: 0.8},
			"coherence.section-headers": {Weight: 0.3},
			"coherence.examples":        {Weight: 1.0},

			"technical.advanced-terms":      {Weight: 0.5},
			"technical.explained-mechanism": {Weight: 1.0},
			"technical.parallelism":         {Weight: 0.8},
			"technical.seminal-citations":   {Weight: 1.5},

			"authenticity.personal-voice":       {Weight: 0.8},
			"authenticity.conversational-help":  {Weight: 1.0},
			"authenticity.conversational-offer": {Weight: 0.8},
			"authenticity.generic-phrases":      {Weight: 1.0},

			"verification.citation-terms": {Weight: 1},
			"verification.misinfo-claims": {Weight: 1},
			"boundary.disclosure-terms":   {Weight: 1},
			"security.humility-terms":     {Weight: 1},

			"agency.questions":     {Weight: 8},
			"agency.engagement":    {Weight: 10},
			"agency.second-person": {Weight: 3, Cap: 15},

			"contribution.technical-patterns": {Weight: 8},
			"contribution.self-reference":     {Weight: 10},
			"contribution.model-names":        {Weight: 5},

			"transparency.explicit-markers": {Weight: 12},
			"transparency.complexity-ack":   {Weight: 10},
			"transparency.conceptual":       {Weight: 8},

			"collaboration.interactive":     {Weight: 15},
			"collaboration.explain-offer":   {Weight: 8},
			"collaboration.help-understand": {Weight: 10},
		}
	}
	return map[string]Tuning{
		"mission.direct-address":   {Weight: 0.6},
		"mission.contextual-goals": {Weight: 0.8},

		"coherence.flow-indicators": {Weight: 0.6},
		"coherence.section-headers": {Weight: 0.25},
		"coherence.examples":        {Weight: 0.8},

		"technical.advanced-terms":      {Weight: 0.4},
		"technical.explained-mechanism": {Weight: 0.8},
		"technical.parallelism":         {Weight: 0.6},
		"technical.seminal-citations":   {Weight: 1.2},

		"authenticity.personal-voice":       {Weight: 0.6},
		"authenticity.conversational-help":  {Weight: 0.8},
		"authenticity.conversational-offer": {Weight: 0.6},
		"authenticity.generic-phrases":      {Weight: 0.8},

		"verification.citation-terms": {Weight: 1},
		"verification.misinfo-claims": {Weight: 1},
		"boundary.disclosure-terms":   {Weight: 1},
		"security.humility-terms":     {Weight: 1},

		"agency.questions":     {Weight: 6},
		"agency.engagement":    {Weight: 8},
		"agency.second-person": {Weight: 2, Cap: 12},

		"contribution.technical-patterns": {Weight: 6},
		"contribution.self-reference":     {Weight: 8},
		"contribution.model-names":        {Weight: 4},

		"transparency.explicit-markers": {Weight: 10},
		"transparency.complexity-ack":   {Weight: 8},
		"transparency.conceptual":       {Weight: 6},

		"collaboration.interactive":     {Weight: 12},
		"collaboration.explain-offer":   {Weight: 6},
		"collaboration.help-understand": {Weight: 8},
	}
}

// enhancedProfile adds emergence detection and regex patterns, weights
// engagement higher, and uses strict threshold-based trust checks.
func enhancedProfile() *Profile {
	g := patternGroups(true)
	g["emergence.analogy"] = Tuning{Weight: 0.3}
	g["emergence.structure"] = Tuning{Weight: 0.2}
	g["emergence.synthesis"] = Tuning{Weight: 0.2}
	misinfoPenalties(g)
	ethicsGroups(g)
	resonanceGroups(g)

	return &Profile{
		Name:        Enhanced,
		Description: "Pattern-based detection with emergence bonus and engagement weighting.",
		FacetBases:  bases(5.0, 5.0, 5.0, 7.0, 50, 60),
		Groups:      g,
		Trust: TrustConfig{
			PassMin:    2,
			PartialMin: 1,
			Combine:    CombineStrict,
		},
		Emergence:   EmergenceConfig{Cap: 1.0},
		Weights:     map[string]float64{WeightReality: 0.35, WeightTrust: 0.25, WeightParity: 0.40},
		TrustScores: map[string]float64{"PASS": 100, "PARTIAL": 65, "FAIL": 0},
		Adjustments: commonAdjustments(),
		Resonance:   commonResonance(),
		Ethics:      commonEthics(),
		Defaults:    commonDefaults(),
	}
}

// balancedProfile moderates the enhanced tuning and adds small flat
// calibration adjustments so scores track manual analysis.
func balancedProfile() *Profile {
	g := patternGroups(false)
	g["emergence.analogy"] = Tuning{Weight: 0.2}
	g["emergence.structure"] = Tuning{Weight: 0.15}
	g["emergence.synthesis"] = Tuning{Weight: 0.15}
	misinfoPenalties(g)
	ethicsGroups(g)
	resonanceGroups(g)

	adj := commonAdjustments()
	adj[AdjustReality] = 0.8
	adj[AdjustParity] = 5

	return &Profile{
		Name:        Balanced,
		Description: "Moderated pattern detection calibrated against manual analysis.",
		FacetBases:  bases(5.5, 5.5, 5.5, 6.0, 55, 60),
		Groups:      g,
		Trust: TrustConfig{
			PassMin:    1,
			PartialMin: 0,
			Combine:    CombineStrict,
		},
		Emergence:   EmergenceConfig{Cap: 1.0},
		Weights:     map[string]float64{WeightReality: 0.4, WeightTrust: 0.2, WeightParity: 0.4},
		TrustScores: map[string]float64{"PASS": 100, "PARTIAL": 60, "FAIL": 20},
		Adjustments: adj,
		Resonance:   commonResonance(),
		Ethics:      commonEthics(),
		Defaults:    commonDefaults(),
	}
}

// calibratedProfile shifts bases and adjustments upward and relaxes the
// trust combination so scores land near expert expectations.
func calibratedProfile() *Profile {
	g := patternGroups(true)
	g["emergence.analogy"] = Tuning{Weight: 0.3}
	g["emergence.structure"] = Tuning{Weight: 0.2}
	g["emergence.synthesis"] = Tuning{Weight: 0.2}
	misinfoPenalties(g)
	ethicsGroups(g)
	resonanceGroups(g)

	adj := commonAdjustments()
	adj[AdjustReality] = 1.5
	adj[AdjustParity] = 10
	adj[AdjustOverall] = 10

	return &Profile{
		Name:        Calibrated,
		Description: "Upward-calibrated detection with lenient trust combination.",
		FacetBases:  bases(6.0, 6.0, 6.0, 7.0, 60, 60),
		Groups:      g,
		Trust: TrustConfig{
			PassMin:    1,
			PartialMin: 0,
			Combine:    CombineLenient,
		},
		Emergence:   EmergenceConfig{Cap: 1.5},
		Weights:     map[string]float64{WeightReality: 0.4, WeightTrust: 0.2, WeightParity: 0.4},
		TrustScores: map[string]float64{"PASS": 100, "PARTIAL": 65, "FAIL": 30},
		Adjustments: adj,
		Resonance:   commonResonance(),
		Ethics:      commonEthics(),
		Defaults:    commonDefaults(),
	}
}
