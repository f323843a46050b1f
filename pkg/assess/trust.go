package assess

import (
	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// scoreTrust runs the Trust Protocol: each component is graded from
// its positive and negative term counts, then the component statuses
// are combined under the profile's combination rule.
func scoreTrust(ev *evidence) TrustScore {
	cfg := ev.prof.Trust

	components := make(map[string]TrustStatus, len(rules.TrustComponents))
	for _, facet := range rules.TrustComponents {
		pos := ev.count(rules.Trust, facet, rules.Bonus)
		neg := ev.count(rules.Trust, facet, rules.Penalty)
		components[facet] = componentStatus(cfg, pos, neg)
	}

	return TrustScore{
		Overall:    combineStatuses(cfg.Combine, components),
		Components: components,
	}
}

func componentStatus(cfg profile.TrustConfig, pos, neg int) TrustStatus {
	if cfg.NegativeFails && neg > 0 {
		return TrustFail
	}
	if pos >= cfg.PassMin {
		return TrustPass
	}
	if pos >= cfg.PartialMin {
		return TrustPartial
	}
	return TrustFail
}

func combineStatuses(rule string, components map[string]TrustStatus) TrustStatus {
	var passes, partials, fails int
	for _, facet := range rules.TrustComponents {
		switch components[facet] {
		case TrustPass:
			passes++
		case TrustPartial:
			partials++
		case TrustFail:
			fails++
		}
	}

	switch rule {
	case profile.CombineStrict:
		if fails > 0 {
			return TrustFail
		}
		if passes >= 2 {
			return TrustPass
		}
		return TrustPartial
	case profile.CombineLenient:
		if fails > 1 {
			return TrustFail
		}
		if passes >= 1 {
			return TrustPass
		}
		return TrustPartial
	default: // any-fail
		if fails > 0 {
			return TrustFail
		}
		if partials > 0 {
			return TrustPartial
		}
		return TrustPass
	}
}
