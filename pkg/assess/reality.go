package assess

import (
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// Connective density only signals coherence once the text has enough
// sentences to connect.
const connectivesGroup = "coherence.connectives"

// scoreReality produces the 0-10 Reality Index: the mean of the four
// facet scores, the capped emergence bonus, and the profile's flat
// calibration shift.
func scoreReality(ev *evidence) DimensionScore {
	var skip []string
	if min := ev.prof.Adjust(profile.AdjustCoherenceMinSentences); min > 0 && float64(ev.sentences) < min {
		skip = append(skip, connectivesGroup)
	}

	facets := map[string]float64{
		rules.FacetMission:      round1(ev.facetScore(rules.Reality, rules.FacetMission)),
		rules.FacetCoherence:    round1(ev.facetScore(rules.Reality, rules.FacetCoherence, skip...)),
		rules.FacetTechnical:    round1(ev.facetScore(rules.Reality, rules.FacetTechnical)),
		rules.FacetAuthenticity: round1(ev.facetScore(rules.Reality, rules.FacetAuthenticity)),
	}

	bonus := emergenceBonus(ev)
	adjust := ev.prof.Adjust(profile.AdjustReality)

	overall := mean(
		facets[rules.FacetMission],
		facets[rules.FacetCoherence],
		facets[rules.FacetTechnical],
		facets[rules.FacetAuthenticity],
	) + bonus + adjust

	scale := profile.ScaleFor(rules.Reality)
	return DimensionScore{
		Overall:    round1(clamp(overall, scale.Min, scale.Max)),
		Facets:     facets,
		Bonus:      bonus,
		Adjustment: adjust,
	}
}

// emergenceBonus sums the emergence-pattern contributions and caps the
// total at the profile limit. A zero cap disables the bonus entirely.
func emergenceBonus(ev *evidence) float64 {
	cap := ev.prof.Emergence.Cap
	if cap <= 0 {
		return 0
	}
	total := 0.0
	for _, c := range ev.groupContribs(rules.Reality, rules.FacetEmergence) {
		total += c
	}
	return clamp(total, 0, cap)
}
