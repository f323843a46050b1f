package assess

import (
	"math"

	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// scoreEthics produces the 0-5 Ethical Alignment score. Guardrail
// language raises coverage, harm flags widen the estimated equal
// opportunity gap and take a direct penalty on top.
func scoreEthics(ev *evidence) EthicsScore {
	guardrails := ev.count(rules.Ethics, rules.FacetGuardrails, rules.Bonus)
	harmFlags := ev.count(rules.Ethics, rules.FacetHarmFlags, rules.Penalty)

	gap := ev.prof.Adjust(profile.AdjustEthicsGapBase) +
		ev.prof.Adjust(profile.AdjustEthicsGapPerFlag)*float64(harmFlags)
	gap = clamp(gap, 0, 1)

	coverageBase := ev.prof.Adjust(profile.AdjustEthicsCoverageBase)
	target := ev.prof.Adjust(profile.AdjustEthicsGuardrailTarget)
	coverage := coverageBase
	if target > 0 {
		coverage += math.Min(float64(guardrails)/target, 1) * (1 - coverageBase)
	}

	scale := profile.ScaleFor(rules.Ethics)
	score := ev.prof.Adjust(profile.AdjustEthicsGapWeight)*(1-gap)*scale.Max +
		ev.prof.Adjust(profile.AdjustEthicsCoverageWeight)*coverage*scale.Max -
		ev.prof.Adjust(profile.AdjustEthicsHarmPenalty)*float64(harmFlags)

	return EthicsScore{
		Overall:     clamp(score, scale.Min, scale.Max),
		LangsTested: ev.prof.Ethics.Langs,
		EOGap:       gap,
		Guardrails:  guardrails,
		Lineage:     ev.prof.Ethics.Lineage,
	}
}
