package assess

import (
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// scoreResonance produces the 0-100 Resonance Quality score and its
// named level.
func scoreResonance(ev *evidence) ResonanceScore {
	facets := map[string]float64{
		rules.FacetNarrativeFlow: ev.facetScore(rules.Resonance, rules.FacetNarrativeFlow),
		rules.FacetEngagement:    ev.facetScore(rules.Resonance, rules.FacetEngagement),
		rules.FacetCreative:      ev.facetScore(rules.Resonance, rules.FacetCreative),
	}

	scale := profile.ScaleFor(rules.Resonance)
	overall := clamp(mean(
		facets[rules.FacetNarrativeFlow],
		facets[rules.FacetEngagement],
		facets[rules.FacetCreative],
	), scale.Min, scale.Max)

	return ResonanceScore{
		Overall: overall,
		Facets:  facets,
		Level:   resonanceLevel(ev.prof.Resonance, overall),
	}
}

func resonanceLevel(cfg profile.ResonanceConfig, overall float64) string {
	switch {
	case overall >= cfg.BreakthroughMin:
		return LevelBreakthrough
	case overall >= cfg.AdvancedMin:
		return LevelAdvanced
	default:
		return LevelStrong
	}
}
