package audit

import (
	"fmt"
)

// Retention ceiling a bundle may declare, in days.
const MaxRetentionDays = 365

// Long retention on raw content draws a recommendation.
const rawRetentionAdvisoryDays = 90

// ValidationResult separates hard problems from soft suggestions.
type ValidationResult struct {
	Valid           bool     `json:"valid"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// ValidateBundle checks a ticket for required fields, internal
// consistency, and signature integrity. It never mutates the ticket.
func ValidateBundle(t *ContextBridgeTicket) ValidationResult {
	r := ValidationResult{Issues: []string{}, Recommendations: []string{}}
	issue := func(format string, args ...any) {
		r.Issues = append(r.Issues, fmt.Sprintf(format, args...))
	}
	recommend := func(format string, args ...any) {
		r.Recommendations = append(r.Recommendations, fmt.Sprintf(format, args...))
	}

	if t == nil {
		return ValidationResult{Issues: []string{"ticket is nil"}, Recommendations: []string{}}
	}

	if t.ID == "" {
		issue("missing ticket id")
	}
	if t.TicketVersion == "" {
		issue("missing ticket_version")
	}

	validateSummary(t, issue)
	validateReceipts(t, issue)
	validateScope(t.Scope, issue, recommend)
	validateLog(t, issue)
	validateSignatures(t, issue)

	r.Valid = len(r.Issues) == 0
	return r
}

func validateSummary(t *ContextBridgeTicket, issue func(string, ...any)) {
	if t.Summary.Assessments <= 0 {
		issue("summary covers no assessments")
	}
	if len(t.Summary.Profiles) == 0 {
		issue("summary names no profiles")
	}
}

func validateReceipts(t *ContextBridgeTicket, issue func(string, ...any)) {
	n := t.Summary.Assessments
	lists := map[string]int{
		"reality":   len(t.Receipts.Reality),
		"trust":     len(t.Receipts.Trust),
		"ethics":    len(t.Receipts.Ethics),
		"resonance": len(t.Receipts.Resonance),
		"parity":    len(t.Receipts.Parity),
	}
	for _, name := range []string{"reality", "trust", "ethics", "resonance", "parity"} {
		if lists[name] != n {
			issue("%s receipts: have %d, summary declares %d assessments", name, lists[name], n)
		}
	}

	for i, rc := range t.Receipts.Reality {
		if rc.SampleConformance < 0 || rc.SampleConformance > 1 {
			issue("reality receipt %d: sample_conformance out of [0,1]", i)
		}
		if rc.GoldenVersion == "" {
			issue("reality receipt %d: missing golden_version", i)
		}
	}
	for i, rc := range t.Receipts.Trust {
		if rc.Confidence < 0 || rc.Confidence > 1 {
			issue("trust receipt %d: confidence out of [0,1]", i)
		}
		if len(rc.EnsembleMembers) == 0 {
			issue("trust receipt %d: empty ensemble_members", i)
		}
	}
	for i, rc := range t.Receipts.Ethics {
		if len(rc.LangsTested) == 0 {
			issue("ethics receipt %d: empty langs_tested", i)
		}
		if rc.EOGap < 0 {
			issue("ethics receipt %d: negative eo_gap", i)
		}
	}
	for i, rc := range t.Receipts.Parity {
		if rc.DocDrift < 0 {
			issue("parity receipt %d: negative doc_drift", i)
		}
		if rc.CodegenHash == "" {
			issue("parity receipt %d: missing codegen_hash", i)
		}
	}
}

func validateScope(s Scope, issue, recommend func(string, ...any)) {
	if s.Purpose == "" {
		issue("scope: missing purpose")
	}
	if s.MaxRetentionDays <= 0 {
		issue("scope: retention must be positive")
	} else if s.MaxRetentionDays > MaxRetentionDays {
		issue("scope: retention %d days exceeds policy maximum %d", s.MaxRetentionDays, MaxRetentionDays)
	}

	// Training use implies raw content access.
	if s.AllowTraining && !s.AllowRaw {
		issue("scope: allow_training requires allow_raw")
	}
	if s.AllowRaw && s.MaxRetentionDays > rawRetentionAdvisoryDays {
		recommend("raw content retained for %d days; consider %d or fewer", s.MaxRetentionDays, rawRetentionAdvisoryDays)
	}
}

func validateLog(t *ContextBridgeTicket, issue func(string, ...any)) {
	if len(t.TransparencyLog) == 0 {
		issue("transparency_log is empty")
		return
	}
	for i, e := range t.TransparencyLog {
		if e.Who == "" || e.What == "" {
			issue("transparency_log entry %d: missing who/what", i)
		}
		if e.CBTID != t.ID {
			issue("transparency_log entry %d: cbt_id does not match ticket id", i)
		}
		if i > 0 && e.When.Before(t.TransparencyLog[i-1].When) {
			issue("transparency_log entry %d: out of order", i)
		}
	}
}

func validateSignatures(t *ContextBridgeTicket, issue func(string, ...any)) {
	if len(t.Signatures) == 0 {
		issue("ticket is unsigned")
		return
	}
	payload, err := signablePayload(t)
	if err != nil {
		issue("cannot re-encode ticket for signature check: %v", err)
		return
	}
	for signer, sig := range t.Signatures {
		if signPayload(signer, payload) != sig {
			issue("signature by %q does not match ticket content", signer)
		}
	}
}
