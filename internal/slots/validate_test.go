package slots

import (
	"testing"
	"time"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func testIncident(severity models.Severity) models.Incident {
	return models.Incident{
		ID:       "inc-1",
		Severity: severity,
		Package:  "com.example.app",
		Events: []models.Event{{
			ID: "e1", Type: models.EventSuspiciousUpdate, Severity: severity,
			Package: "com.example.app", StartTS: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Signals: []models.Signal{
				{ID: "s1", Type: models.FindingOverbroadPermissions, Severity: severity},
				{ID: "s2", Type: models.FindingCertBaselineDrift, Severity: models.SeverityCritical},
			},
		}},
		Status: models.StatusNew,
	}
}

func candidate(severity models.Severity, ids ...string) models.StructuredSlots {
	return models.StructuredSlots{
		Severity:    severity,
		EvidenceIDs: ids,
		Actions:     []models.ActionCategory{models.ActionMonitor},
		Confidence:  0.7,
	}
}

func TestValidateGroundedSlotsAreValid(t *testing.T) {
	res := Validate(candidate(models.SeverityMedium, "s1", "e1"), testIncident(models.SeverityMedium), Lenient)
	if res.Outcome != Valid {
		t.Fatalf("expected Valid, got %s (%v)", res.Outcome, res.Issues)
	}
}

func TestValidateDropsHallucinatedIDsInLenientMode(t *testing.T) {
	res := Validate(candidate(models.SeverityMedium, "s1", "ghost"), testIncident(models.SeverityMedium), Lenient)
	if res.Outcome != Repaired {
		t.Fatalf("expected Repaired, got %s", res.Outcome)
	}
	if len(res.Slots.EvidenceIDs) != 1 || res.Slots.EvidenceIDs[0] != "s1" {
		t.Fatalf("expected only s1 to survive, got %v", res.Slots.EvidenceIDs)
	}
	truth := testIncident(models.SeverityMedium).EvidenceIDs()
	for _, id := range res.Slots.EvidenceIDs {
		if _, ok := truth[id]; !ok {
			t.Fatalf("ungrounded id %q in repaired slots", id)
		}
	}
}

func TestValidateRejectsHallucinationInStrictMode(t *testing.T) {
	res := Validate(candidate(models.SeverityMedium, "s1", "ghost"), testIncident(models.SeverityMedium), Strict)
	if res.Outcome != Rejected {
		t.Fatalf("expected Rejected in strict mode, got %s", res.Outcome)
	}
}

func TestValidateRejectsWhenNoGroundedIDsRemainInEitherMode(t *testing.T) {
	for _, mode := range []Mode{Lenient, Strict} {
		res := Validate(candidate(models.SeverityMedium, "ghost1", "ghost2"), testIncident(models.SeverityMedium), mode)
		if res.Outcome != Rejected {
			t.Fatalf("mode %d: expected Rejected, got %s", mode, res.Outcome)
		}
	}
}

func TestValidateClampsExcessiveEscalation(t *testing.T) {
	// Incident is LOW; candidate claims CRITICAL, three levels up. One level
	// (MEDIUM) is the permitted ceiling.
	res := Validate(candidate(models.SeverityCritical, "s1"), testIncident(models.SeverityLow), Lenient)
	if res.Outcome != Repaired {
		t.Fatalf("expected Repaired, got %s", res.Outcome)
	}
	if res.Slots.Severity != models.SeverityMedium {
		t.Fatalf("expected severity clamped to MEDIUM, got %s", res.Slots.Severity)
	}
}

func TestValidateAllowsSingleLevelEscalationAndFreeDeescalation(t *testing.T) {
	if res := Validate(candidate(models.SeverityHigh, "s1"), testIncident(models.SeverityMedium), Lenient); res.Outcome != Valid {
		t.Fatalf("one-level escalation should be Valid, got %s (%v)", res.Outcome, res.Issues)
	}
	if res := Validate(candidate(models.SeverityInfo, "s1"), testIncident(models.SeverityCritical), Lenient); res.Outcome != Valid {
		t.Fatalf("de-escalation should be Valid, got %s (%v)", res.Outcome, res.Issues)
	}
}

func TestValidateClearsInvalidIgnoreReason(t *testing.T) {
	c := candidate(models.SeverityMedium, "s1")
	c.CanBeIgnored = true
	c.IgnoreReason = models.IgnoreReason("BECAUSE_I_SAID_SO")

	res := Validate(c, testIncident(models.SeverityMedium), Lenient)
	if res.Outcome != Repaired {
		t.Fatalf("expected Repaired, got %s", res.Outcome)
	}
	if res.Slots.CanBeIgnored || res.Slots.IgnoreReason != "" {
		t.Fatalf("invalid ignore reason must clear the ignorable flag: %+v", res.Slots)
	}
}

func TestValidateKeepsAllowedIgnoreReason(t *testing.T) {
	c := candidate(models.SeverityMedium, "s1")
	c.CanBeIgnored = true
	c.IgnoreReason = models.IgnoreManagedDevice

	res := Validate(c, testIncident(models.SeverityMedium), Lenient)
	if res.Outcome != Valid {
		t.Fatalf("expected Valid, got %s (%v)", res.Outcome, res.Issues)
	}
	if !res.Slots.CanBeIgnored {
		t.Fatalf("allowed ignore reason should keep the flag")
	}
}

func TestValidateDoesNotMutateCandidate(t *testing.T) {
	c := candidate(models.SeverityMedium, "s1", "ghost")
	Validate(c, testIncident(models.SeverityMedium), Lenient)
	if len(c.EvidenceIDs) != 2 {
		t.Fatalf("candidate slots were mutated: %v", c.EvidenceIDs)
	}
}
