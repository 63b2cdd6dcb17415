package policy

import (
	"testing"
	"time"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func incidentWith(severity models.Severity, hardType models.FindingType, topConfidence float64, topName models.HypothesisName) models.Incident {
	signals := []models.Signal{
		{ID: "s1", Type: models.FindingOverbroadPermissions, Severity: models.SeverityMedium, Package: "com.example.app"},
	}
	if hardType != "" {
		signals = append(signals, models.Signal{ID: "s2", Type: hardType, Severity: models.SeverityHigh, Package: "com.example.app"})
	}
	return models.Incident{
		ID:       "inc-1",
		Severity: severity,
		Package:  "com.example.app",
		Events: []models.Event{{
			ID: "e1", Type: models.EventSuspiciousUpdate, Severity: severity,
			Package: "com.example.app", StartTS: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			Signals: signals,
		}},
		Hypotheses: []models.Hypothesis{{Name: topName, Confidence: topConfidence}},
		Status:     models.StatusNew,
	}
}

func TestVirusClaimAlwaysForbidden(t *testing.T) {
	incident := incidentWith(models.SeverityCritical, models.FindingCertBaselineDrift, 0.95, models.HypothesisRepackagedApp)
	constraints := DetermineConstraints(incident)
	if !constraints.Has(models.ForbidVirusClaim) {
		t.Fatalf("virus claim must always be forbidden")
	}
}

func TestMalwareUnlocksAtLowerConfidenceThanCompromise(t *testing.T) {
	// 0.65 clears the malware floor (0.6) but not the compromise floor (0.7).
	incident := incidentWith(models.SeverityHigh, models.FindingCertBaselineDrift, 0.65, models.HypothesisRepackagedApp)
	constraints := DetermineConstraints(incident)

	if constraints.Has(models.ForbidMalwareClaim) {
		t.Fatalf("malware claim should unlock at confidence 0.65 with hard evidence")
	}
	if !constraints.Has(models.ForbidCompromiseClaim) {
		t.Fatalf("compromise claim must stay forbidden at confidence 0.65")
	}
}

func TestMalwareClaimForbiddenWithoutHardEvidence(t *testing.T) {
	incident := incidentWith(models.SeverityHigh, "", 0.95, models.HypothesisMaliciousUpdate)
	constraints := DetermineConstraints(incident)
	if !constraints.Has(models.ForbidMalwareClaim) {
		t.Fatalf("malware claim requires hard evidence")
	}
}

func TestAlarmistFramingForbiddenForInfoAndLow(t *testing.T) {
	for _, sev := range []models.Severity{models.SeverityInfo, models.SeverityLow} {
		constraints := DetermineConstraints(incidentWith(sev, "", 0.3, models.HypothesisFeatureExpansion))
		if !constraints.Has(models.ForbidAlarmistFraming) {
			t.Fatalf("alarmist framing must be forbidden at severity %s", sev)
		}
	}
	constraints := DetermineConstraints(incidentWith(models.SeverityHigh, "", 0.3, models.HypothesisFeatureExpansion))
	if constraints.Has(models.ForbidAlarmistFraming) {
		t.Fatalf("alarmist framing should not be forbidden at HIGH severity")
	}
}

func TestFactoryResetRequiresCriticalSeverityAndHardEvidence(t *testing.T) {
	cases := []struct {
		severity models.Severity
		hard     models.FindingType
		forbid   bool
	}{
		{models.SeverityCritical, models.FindingCertBaselineDrift, false},
		{models.SeverityCritical, "", true},
		{models.SeverityHigh, models.FindingCertBaselineDrift, true},
	}
	for _, tc := range cases {
		constraints := DetermineConstraints(incidentWith(tc.severity, tc.hard, 0.8, models.HypothesisRepackagedApp))
		if constraints.Has(models.ForbidFactoryReset) != tc.forbid {
			t.Fatalf("severity=%s hard=%q: forbid factory reset = %v, want %v", tc.severity, tc.hard, !tc.forbid, tc.forbid)
		}
	}
}

func TestSpyingClaimNeedsPatternHardEvidenceAndConfirmedHypothesis(t *testing.T) {
	incident := incidentWith(models.SeverityCritical, models.FindingKnownStalkerware, 0.85, models.HypothesisConfirmedStalkerware)
	incident.Events[0].Type = models.EventStalkerwarePattern
	constraints := DetermineConstraints(incident)
	if constraints.Has(models.ForbidSpyingClaim) {
		t.Fatalf("spying claim should unlock with pattern, hard evidence, and confirmed hypothesis")
	}

	weaker := incidentWith(models.SeverityCritical, models.FindingKnownStalkerware, 0.85, models.HypothesisCoveredMonitoring)
	weaker.Events[0].Type = models.EventStalkerwarePattern
	if !DetermineConstraints(weaker).Has(models.ForbidSpyingClaim) {
		t.Fatalf("spying claim must stay forbidden without a confirmed-stalkerware top hypothesis")
	}
}

func TestValidateRemovesFactoryResetAndRenumbersSteps(t *testing.T) {
	incident := incidentWith(models.SeverityHigh, models.FindingCertBaselineDrift, 0.8, models.HypothesisRepackagedApp)
	answer := models.Answer{
		IncidentID: incident.ID,
		Severity:   models.SeverityHigh,
		Steps: []models.RecommendedAction{
			{Step: 1, Category: models.ActionReviewPermissions},
			{Step: 2, Category: models.ActionFactoryReset},
			{Step: 3, Category: models.ActionUninstall},
			{Step: 4, Category: models.ActionMonitor},
		},
		EvidenceIDs: []string{"s2"},
		Confidence:  0.8,
	}

	corrected, violations := ValidateAnswer(answer, incident)
	if violations == 0 {
		t.Fatalf("expected at least one counted correction")
	}
	for i, step := range corrected.Steps {
		if step.Category == models.ActionFactoryReset {
			t.Fatalf("factory reset step survived correction")
		}
		if step.Step != i+1 {
			t.Fatalf("steps not contiguous from 1: step %d numbered %d", i+1, step.Step)
		}
	}
	if len(corrected.Steps) != 3 {
		t.Fatalf("expected 3 remaining steps, got %d", len(corrected.Steps))
	}
	// Original untouched.
	if len(answer.Steps) != 4 || answer.Steps[1].Category != models.ActionFactoryReset {
		t.Fatalf("input answer was mutated")
	}
}

func TestValidateCapsSeverityUnderAlarmistConstraint(t *testing.T) {
	incident := incidentWith(models.SeverityLow, "", 0.3, models.HypothesisFeatureExpansion)
	answer := models.Answer{IncidentID: incident.ID, Severity: models.SeverityCritical, Confidence: 0.9}

	corrected, violations := ValidateAnswer(answer, incident)
	if corrected.Severity != models.SeverityMedium {
		t.Fatalf("expected severity capped to MEDIUM, got %s", corrected.Severity)
	}
	if violations != 1 {
		t.Fatalf("expected 1 violation, got %d", violations)
	}
}

func TestValidateDowngradesUnsupportedCriticalClaim(t *testing.T) {
	// HIGH severity incident, weak hypothesis: CRITICAL framing unsupported.
	incident := incidentWith(models.SeverityHigh, "", 0.4, models.HypothesisMaliciousUpdate)
	answer := models.Answer{IncidentID: incident.ID, Severity: models.SeverityCritical, Confidence: 0.9}

	corrected, violations := ValidateAnswer(answer, incident)
	if corrected.Severity != models.SeverityHigh {
		t.Fatalf("expected CRITICAL capped to HIGH, got %s", corrected.Severity)
	}
	if violations != 1 {
		t.Fatalf("expected 1 violation, got %d", violations)
	}
}

func TestIsActionAllowedBlocksFactoryResetUnderConstraint(t *testing.T) {
	constraints := models.ConstraintSet{models.ForbidFactoryReset: {}}
	if IsActionAllowed(models.ActionFactoryReset, constraints) {
		t.Fatalf("factory reset should be blocked")
	}
	if !IsActionAllowed(models.ActionUninstall, constraints) {
		t.Fatalf("uninstall should be allowed")
	}
}

func TestHardFindingTypesExtractsOnlyHardSignals(t *testing.T) {
	incident := incidentWith(models.SeverityHigh, models.FindingCertMismatch, 0.8, models.HypothesisRepackagedApp)
	incident.Events[0].Signals = append(incident.Events[0].Signals, models.Signal{
		ID: "s3", Type: models.FindingNewApp, Severity: models.SeverityLow,
	})

	types := HardFindingTypes(incident)
	if len(types) != 1 || types[0] != models.FindingCertMismatch {
		t.Fatalf("expected only the hard cert mismatch type, got %v", types)
	}
}
