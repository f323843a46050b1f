package assess

import (
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// scoreParity produces the 0-100 Canvas Parity score: the mean of the
// four collaboration-balance facets plus the profile's flat shift.
func scoreParity(ev *evidence) DimensionScore {
	facets := map[string]float64{
		rules.FacetAgency:        ev.facetScore(rules.Parity, rules.FacetAgency),
		rules.FacetContribution:  ev.facetScore(rules.Parity, rules.FacetContribution),
		rules.FacetTransparency:  ev.facetScore(rules.Parity, rules.FacetTransparency),
		rules.FacetCollaboration: ev.facetScore(rules.Parity, rules.FacetCollaboration),
	}

	adjust := ev.prof.Adjust(profile.AdjustParity)
	scale := profile.ScaleFor(rules.Parity)
	overall := mean(
		facets[rules.FacetAgency],
		facets[rules.FacetContribution],
		facets[rules.FacetTransparency],
		facets[rules.FacetCollaboration],
	) + adjust

	// Parity is reported as a whole number on the 0-100 scale.
	return DimensionScore{
		Overall:    float64(roundScore(clamp(overall, scale.Min, scale.Max))),
		Facets:     facets,
		Adjustment: adjust,
	}
}
