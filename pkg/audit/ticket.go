package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/s8ken/SYMBI-Resonate/pkg/assess"
)

// TicketVersion is the current context bridge ticket schema version.
const TicketVersion = "1.0"

// Scope is the data-handling policy a ticket is issued under.
type Scope struct {
	AllowRaw         bool   `json:"allow_raw"`
	AllowTraining    bool   `json:"allow_training"`
	MaxRetentionDays int    `json:"max_retention_days"`
	Purpose          string `json:"purpose"`
}

// LogEntry is one transparency log line.
type LogEntry struct {
	Who   string    `json:"who"`
	What  string    `json:"what"`
	When  time.Time `json:"when"`
	CBTID string    `json:"cbt_id"`
}

// Summary condenses the assessments a ticket covers.
type Summary struct {
	Assessments   int            `json:"assessments"`
	Profiles      []string       `json:"profiles"`
	MeanOverall   float64        `json:"mean_overall"`
	TrustOutcomes map[string]int `json:"trust_outcomes"`
}

// TicketReceipts groups the per-dimension receipt lists, one entry per
// assessment, in the order the assessments were added.
type TicketReceipts struct {
	Reality   []RealityReceipt   `json:"reality"`
	Trust     []TrustReceipt     `json:"trust"`
	Ethics    []EthicsReceipt    `json:"ethics"`
	Resonance []ResonanceReceipt `json:"resonance"`
	Parity    []ParityReceipt    `json:"parity"`
}

// ContextBridgeTicket is a signed, self-describing audit artifact.
// Immutable once signed.
type ContextBridgeTicket struct {
	ID              string            `json:"id"`
	TicketVersion   string            `json:"ticket_version"`
	Summary         Summary           `json:"summary"`
	Receipts        TicketReceipts    `json:"receipts"`
	Scope           Scope             `json:"scope"`
	TransparencyLog []LogEntry        `json:"transparency_log"`
	Signatures      map[string]string `json:"signatures"`
}

// TicketBuilder assembles one ticket. Not safe for concurrent use; use
// one builder per ticket.
type TicketBuilder struct {
	gen     *Generator
	results []*assess.AssessmentResult
	scope   *Scope
	signers []string

	now   func() time.Time
	newID func() string
}

// BuilderOption adjusts ticket construction.
type BuilderOption func(*TicketBuilder)

// WithClock fixes the transparency log timestamp source.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *TicketBuilder) { b.now = now }
}

// WithIDSource fixes the ticket ID source.
func WithIDSource(fn func() string) BuilderOption {
	return func(b *TicketBuilder) { b.newID = fn }
}

func NewTicketBuilder(gen *Generator, opts ...BuilderOption) *TicketBuilder {
	b := &TicketBuilder{
		gen:   gen,
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// AddAssessment appends one result to the ticket.
func (b *TicketBuilder) AddAssessment(r *assess.AssessmentResult) *TicketBuilder {
	b.results = append(b.results, r)
	return b
}

// WithScope sets the ticket's data-handling policy.
func (b *TicketBuilder) WithScope(s Scope) *TicketBuilder {
	b.scope = &s
	return b
}

// WithSigner registers a signer. Build produces one signature per
// registered signer.
func (b *TicketBuilder) WithSigner(name string) *TicketBuilder {
	b.signers = append(b.signers, name)
	return b
}

// Build assembles and signs the ticket. Every top-level ticket field
// must be populated; a builder missing assessments, scope, or signers
// fails here rather than producing a partial ticket.
func (b *TicketBuilder) Build() (*ContextBridgeTicket, error) {
	if len(b.results) == 0 {
		return nil, fmt.Errorf("ticket: no assessments added")
	}
	if b.scope == nil {
		return nil, fmt.Errorf("ticket: scope not set")
	}
	if b.scope.Purpose == "" {
		return nil, fmt.Errorf("ticket: scope purpose is empty")
	}
	if b.scope.MaxRetentionDays <= 0 {
		return nil, fmt.Errorf("ticket: scope retention must be positive")
	}
	if len(b.signers) == 0 {
		return nil, fmt.Errorf("ticket: no signers registered")
	}

	id := b.newID()
	now := b.now().UTC()

	t := &ContextBridgeTicket{
		ID:            id,
		TicketVersion: TicketVersion,
		Summary:       b.summarize(),
		Receipts:      b.receipts(),
		Scope:         *b.scope,
		Signatures:    map[string]string{},
	}

	for _, r := range b.results {
		t.TransparencyLog = append(t.TransparencyLog, LogEntry{
			Who:   "assessment-engine",
			What:  fmt.Sprintf("assessed content under profile %s (assessment %s)", r.Profile, r.ID),
			When:  r.Timestamp,
			CBTID: id,
		})
	}
	t.TransparencyLog = append(t.TransparencyLog, LogEntry{
		Who:   "ticket-builder",
		What:  "issued context bridge ticket",
		When:  now,
		CBTID: id,
	})
	sort.SliceStable(t.TransparencyLog, func(i, j int) bool {
		return t.TransparencyLog[i].When.Before(t.TransparencyLog[j].When)
	})

	payload, err := signablePayload(t)
	if err != nil {
		return nil, err
	}
	for _, s := range b.signers {
		t.Signatures[s] = signPayload(s, payload)
	}
	return t, nil
}

func (b *TicketBuilder) summarize() Summary {
	s := Summary{
		Assessments:   len(b.results),
		TrustOutcomes: map[string]int{},
	}
	seen := map[string]bool{}
	total := 0.0
	for _, r := range b.results {
		if !seen[r.Profile] {
			seen[r.Profile] = true
			s.Profiles = append(s.Profiles, r.Profile)
		}
		s.TrustOutcomes[string(r.TrustProtocol.Overall)]++
		total += float64(r.OverallScore)
	}
	sort.Strings(s.Profiles)
	s.MeanOverall = total / float64(len(b.results))
	return s
}

func (b *TicketBuilder) receipts() TicketReceipts {
	var out TicketReceipts
	for _, r := range b.results {
		set := b.gen.Receipts(r)
		out.Reality = append(out.Reality, set.Reality)
		out.Trust = append(out.Trust, set.Trust)
		out.Ethics = append(out.Ethics, set.Ethics)
		out.Resonance = append(out.Resonance, set.Resonance)
		out.Parity = append(out.Parity, set.Parity)
	}
	return out
}

// signablePayload is the canonical encoding covered by signatures:
// the ticket with the signature map emptied. Struct field order makes
// the JSON deterministic.
func signablePayload(t *ContextBridgeTicket) ([]byte, error) {
	unsigned := *t
	unsigned.Signatures = nil
	b, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("ticket: encode for signing: %w", err)
	}
	return b, nil
}

func signPayload(signer string, payload []byte) string {
	h := sha256.New()
	h.Write([]byte(signer))
	h.Write([]byte{0})
	h.Write(payload)
	return "sha256:" + hex.EncodeToString(h.Sum(nil))
}
