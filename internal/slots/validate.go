package slots

import (
	"fmt"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Mode selects how validation treats repairable issues.
type Mode int

const (
	// Lenient repairs what it can and rejects only when no usable evidence
	// remains.
	Lenient Mode = iota
	// Strict rejects on any issue.
	Strict
)

// Outcome classifies a validation result.
type Outcome string

const (
	Valid    Outcome = "VALID"
	Repaired Outcome = "REPAIRED"
	Rejected Outcome = "REJECTED"
)

// Result is the outcome of validating candidate slots against an incident.
type Result struct {
	Outcome Outcome
	Slots   models.StructuredSlots
	Issues  []string
	Reason  string
}

var allowedIgnoreReasons = map[models.IgnoreReason]bool{
	models.IgnoreKnownBenign:   true,
	models.IgnoreUserInitiated: true,
	models.IgnoreManagedDevice: true,
	models.IgnoreLowConfidence: true,
}

// Validate checks candidate slots against the incident's ground truth. Every
// surviving evidence id is guaranteed to be a member of the incident's real
// id set.
func Validate(candidate models.StructuredSlots, incident models.Incident, mode Mode) Result {
	var issues []string
	out := candidate
	out.EvidenceIDs = append([]string(nil), candidate.EvidenceIDs...)
	out.Actions = append([]models.ActionCategory(nil), candidate.Actions...)

	truth := incident.EvidenceIDs()
	grounded := make([]string, 0, len(out.EvidenceIDs))
	for _, id := range out.EvidenceIDs {
		if _, ok := truth[id]; ok {
			grounded = append(grounded, id)
			continue
		}
		issues = append(issues, fmt.Sprintf("evidence id %q not present in incident", id))
	}
	if len(grounded) == 0 {
		// Hallucinated evidence with no recoverable subset rejects in every
		// mode.
		return Result{Outcome: Rejected, Issues: issues, Reason: "no grounded evidence ids remain"}
	}
	out.EvidenceIDs = grounded

	// The candidate may de-escalate freely but escalate at most one ordinal
	// level above the incident's own severity.
	maxOrdinal := incident.Severity.Ordinal() + 1
	if out.Severity.Ordinal() > maxOrdinal {
		issues = append(issues, fmt.Sprintf("severity %s escalates more than one level above incident severity %s", out.Severity, incident.Severity))
		out.Severity = out.Severity.StepDown(out.Severity.Ordinal() - maxOrdinal)
	}

	if out.IgnoreReason != "" && !allowedIgnoreReasons[out.IgnoreReason] {
		issues = append(issues, fmt.Sprintf("ignore reason %q not in allow-list", out.IgnoreReason))
		out.IgnoreReason = ""
		out.CanBeIgnored = false
	}

	if len(out.Notes) > maxNotesLength {
		issues = append(issues, "notes exceed maximum length")
		out.Notes = out.Notes[:maxNotesLength]
	}

	out.Confidence = models.ClampConfidence(out.Confidence)

	if len(issues) == 0 {
		return Result{Outcome: Valid, Slots: out}
	}
	if mode == Strict {
		return Result{Outcome: Rejected, Issues: issues, Reason: "strict mode rejects repaired slots"}
	}
	return Result{Outcome: Repaired, Slots: out, Issues: issues}
}
