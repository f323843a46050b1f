package assess

import (
	"math"
	"strings"

	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// evidence is the per-assessment view of the rule matches: the raw
// matches bucketed by dimension and facet, with per-group contribution
// totals already weighted by the active profile.
type evidence struct {
	prof    *profile.Profile
	matches []rules.Match

	// groupTotal caches the capped, signed contribution of each group.
	groupTotal map[string]float64
	// byFacet indexes matches by "<dimension>.<facet>".
	byFacet map[string][]rules.Match

	sentences int
}

func gather(set *rules.Set, prof *profile.Profile, text string) *evidence {
	ev := &evidence{
		prof:       prof,
		matches:    set.Evaluate(text),
		groupTotal: map[string]float64{},
		byFacet:    map[string][]rules.Match{},
		sentences:  countSentences(text),
	}

	// Fold matches into signed group totals. Weights and caps come from
	// the profile; inactive groups contribute nothing.
	raw := map[string]float64{}
	for _, m := range ev.matches {
		key := string(m.Rule.Dimension) + "." + m.Rule.Facet
		ev.byFacet[key] = append(ev.byFacet[key], m)

		t, ok := prof.Group(m.Rule.Group)
		if !ok {
			continue
		}
		raw[m.Rule.Group] += t.Weight * float64(m.Count)
	}
	for g, total := range raw {
		t, _ := prof.Group(g)
		if t.Cap > 0 && total > t.Cap {
			total = t.Cap
		}
		ev.groupTotal[g] = total
	}
	return ev
}

// facetScore returns the facet's base plus the signed contributions of
// every active group that produced evidence for it, clamped to the
// facet's range. Groups named in skip are ignored.
func (ev *evidence) facetScore(d rules.Dimension, facet string, skip ...string) float64 {
	score := ev.prof.Base(d, facet)
	for _, total := range ev.groupContribs(d, facet, skip...) {
		score += total
	}
	r := ev.prof.Cap(d, facet)
	return clamp(score, r.Min, r.Max)
}

// groupContribs returns the signed per-group contributions to a facet,
// in rule-declaration order so repeated summation is bit-identical.
func (ev *evidence) groupContribs(d rules.Dimension, facet string, skip ...string) []float64 {
	key := string(d) + "." + facet

	// A group's capped total is shared across its rules, so attribute
	// it once per group and apply the penalty sign from the rule kind.
	// Groups never mix penalty and bonus rules; the table enforces it.
	seen := map[string]bool{}
	out := make([]float64, 0, len(ev.byFacet[key]))
	for _, m := range ev.byFacet[key] {
		g := m.Rule.Group
		if seen[g] || skipped(g, skip) {
			continue
		}
		seen[g] = true
		total, ok := ev.groupTotal[g]
		if !ok {
			continue
		}
		if m.Rule.Kind == rules.Penalty {
			total = -total
		}
		out = append(out, total)
	}
	return out
}

// count returns the number of matches in a facet with the given kind,
// restricted to groups active in the profile. Fire-once matches count
// one each; counted rules contribute their occurrence count.
func (ev *evidence) count(d rules.Dimension, facet string, kind rules.Kind) int {
	key := string(d) + "." + facet
	n := 0
	for _, m := range ev.byFacet[key] {
		if m.Rule.Kind != kind {
			continue
		}
		if _, ok := ev.prof.Group(m.Rule.Group); !ok {
			continue
		}
		n += m.Count
	}
	return n
}

func skipped(group string, skip []string) bool {
	for _, s := range skip {
		if s == group {
			return true
		}
	}
	return false
}

// countSentences estimates the sentence count by terminal punctuation.
func countSentences(text string) int {
	n := 0
	for _, r := range text {
		switch r {
		case '.', '!', '?':
			n++
		}
	}
	if n == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// roundScore rounds half away from zero to the nearest integer.
func roundScore(v float64) int {
	return int(math.Floor(v + 0.5))
}

// round1 rounds to one decimal with the same half-up convention.
func round1(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}

func mean(vals ...float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
