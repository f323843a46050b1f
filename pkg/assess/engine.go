package assess

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/s8ken/SYMBI-Resonate/pkg/profile"
	"github.com/s8ken/SYMBI-Resonate/pkg/rules"
)

// Detector assesses content. Implemented by Engine; callers that batch
// or persist results depend on this instead of the concrete engine.
type Detector interface {
	Evaluate(c Content) *AssessmentResult
}

// Engine scores content against one rule set and one profile. Safe for
// concurrent use.
type Engine struct {
	set  *rules.Set
	prof *profile.Profile

	now   func() time.Time
	newID func() string
}

// Option adjusts engine construction. Used by tests to pin the clock
// and ID source.
type Option func(*Engine)

// WithClock fixes the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDSource fixes the assessment ID source.
func WithIDSource(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// New builds an engine after validating the profile against the rule
// set. Configuration problems fail here, never during Evaluate.
func New(set *rules.Set, prof *profile.Profile, opts ...Option) (*Engine, error) {
	if err := profile.Validate(prof, set); err != nil {
		return nil, err
	}
	e := &Engine{
		set:   set,
		prof:  prof,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Profile returns the engine's calibration profile.
func (e *Engine) Profile() *profile.Profile { return e.prof }

// Rules returns the engine's compiled rule set.
func (e *Engine) Rules() *rules.Set { return e.set }

// Evaluate assesses one piece of content. It never fails: malformed or
// missing metadata is substituted from the profile defaults with a
// warning, and any text scores.
func (e *Engine) Evaluate(c Content) *AssessmentResult {
	meta := e.normalizeMetadata(c.Metadata)

	ev := gather(e.set, e.prof, c.Text)

	reality := scoreReality(ev)
	trust := scoreTrust(ev)
	ethics := scoreEthics(ev)
	resonance := scoreResonance(ev)
	parity := scoreParity(ev)

	return &AssessmentResult{
		ID:        e.newID(),
		Timestamp: e.now().UTC(),
		Profile:   e.prof.Name,
		Metadata:  meta,

		RealityIndex:     reality,
		TrustProtocol:    trust,
		EthicalAlignment: ethics,
		ResonanceQuality: resonance,
		CanvasParity:     parity,

		OverallScore: e.overall(reality, trust, parity),
	}
}

// overall folds reality, trust, and parity into the weighted 0-100
// aggregate, rounded half away from zero.
func (e *Engine) overall(reality DimensionScore, trust TrustScore, parity DimensionScore) int {
	realityScale := profile.ScaleFor(rules.Reality).Max
	parityScale := profile.ScaleFor(rules.Parity).Max

	v := e.prof.Weights[profile.WeightReality]*(reality.Overall/realityScale)*100 +
		e.prof.Weights[profile.WeightTrust]*e.prof.TrustScores[string(trust.Overall)] +
		e.prof.Weights[profile.WeightParity]*(parity.Overall/parityScale)*100 +
		e.prof.Adjust(profile.AdjustOverall)

	return roundScore(clamp(v, 0, 100))
}

func (e *Engine) normalizeMetadata(m Metadata) Metadata {
	d := e.prof.Defaults
	if m.Source == "" {
		slog.Warn("missing content source, using profile default", "default", d.Source)
		m.Source = d.Source
	}
	if m.Author == "" {
		slog.Warn("missing content author, using profile default", "default", d.Author)
		m.Author = d.Author
	}
	if m.Context == "" {
		m.Context = d.Context
	}
	return m
}
