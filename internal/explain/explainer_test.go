package explain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/inference"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/slots"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

type fakeClient struct {
	text string
	err  error
}

func (f *fakeClient) Generate(_ context.Context, _ inference.Request) (inference.Response, error) {
	if f.err != nil {
		return inference.Response{}, f.err
	}
	return inference.Response{Text: f.text, TokenCount: 42}, nil
}

func sampleIncident() models.Incident {
	return models.Incident{
		ID:       "inc-1",
		Severity: models.SeverityHigh,
		Title:    "Suspicious update: com.example.chat",
		Package:  "com.example.chat",
		Events: []models.Event{{
			ID: "e1", Type: models.EventSuspiciousUpdate, Severity: models.SeverityHigh,
			Package: "com.example.chat", StartTS: time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
			Signals: []models.Signal{
				{ID: "s1", Type: models.FindingCertBaselineDrift, Severity: models.SeverityCritical, Summary: "signing certificate changed"},
				{ID: "s2", Type: models.FindingOverbroadPermissions, Severity: models.SeverityMedium, Summary: "asks for many permissions"},
			},
		}},
		Hypotheses: []models.Hypothesis{
			{Name: models.HypothesisRepackagedApp, Summary: "The app was repackaged by a third party", Confidence: 0.72},
			{Name: models.HypothesisLegitimateUpdate, Summary: "The vendor rotated its signing key", Confidence: 0.25},
		},
		Actions: []models.RecommendedAction{
			{Step: 1, Category: models.ActionUninstall, Text: "Uninstall the app"},
			{Step: 2, Category: models.ActionMonitor, Text: "Keep an eye on this app's behavior"},
		},
		Status: models.StatusNew,
	}
}

const goodResponse = `{"assessed_severity":"HIGH","reason_ids":["s1","s2"],"action_categories":["UNINSTALL","MONITOR"],"confidence":0.7,"notes":"This app's update looks unusual."}`

func TestExplainUsesGeneratedPathOnSuccess(t *testing.T) {
	e := New(Config{Client: &fakeClient{text: goodResponse}, Mode: slots.Lenient})

	answer, report := e.Explain(context.Background(), sampleIncident())
	if report.Path != PathGenerated {
		t.Fatalf("expected generated path, got %s (%s)", report.Path, report.FallbackReason)
	}
	if !answer.Generated {
		t.Fatalf("answer not flagged as generated")
	}
	if answer.Severity != models.SeverityHigh {
		t.Fatalf("severity = %s, want HIGH", answer.Severity)
	}
	if len(answer.EvidenceIDs) != 2 {
		t.Fatalf("evidence ids = %v", answer.EvidenceIDs)
	}
}

func TestExplainFallsBackOnEveryTypedFailure(t *testing.T) {
	failures := []error{
		inference.ErrInvalidHandle,
		inference.ErrStaleHandle,
		inference.ErrAlreadyUnloaded,
		inference.ErrNullContext,
		inference.ErrTokenization,
		inference.ErrContextOverflow,
		inference.ErrDecode,
		inference.ErrTimeout,
	}
	for _, failure := range failures {
		e := New(Config{Client: &fakeClient{err: failure}, Mode: slots.Lenient})
		answer, report := e.Explain(context.Background(), sampleIncident())
		if report.Path != PathTemplate {
			t.Fatalf("%v: expected template fallback, got %s", failure, report.Path)
		}
		if report.FallbackReason == "" {
			t.Fatalf("%v: fallback reason missing", failure)
		}
		if answer.Generated {
			t.Fatalf("%v: fallback answer flagged as generated", failure)
		}
		if answer.IncidentID != "inc-1" || len(answer.EvidenceIDs) == 0 {
			t.Fatalf("%v: fallback answer incomplete: %+v", failure, answer)
		}
	}
}

func TestExplainFallsBackOnUnparsableText(t *testing.T) {
	e := New(Config{Client: &fakeClient{text: "I cannot help with that."}, Mode: slots.Lenient})
	_, report := e.Explain(context.Background(), sampleIncident())
	if report.Path != PathTemplate {
		t.Fatalf("expected template fallback, got %s", report.Path)
	}
}

func TestExplainFallsBackOnHallucinatedEvidence(t *testing.T) {
	hallucinated := `{"assessed_severity":"HIGH","reason_ids":["ghost"],"action_categories":["MONITOR"],"confidence":0.7}`
	e := New(Config{Client: &fakeClient{text: hallucinated}, Mode: slots.Lenient})
	_, report := e.Explain(context.Background(), sampleIncident())
	if report.Path != PathTemplate {
		t.Fatalf("expected template fallback for fully hallucinated evidence, got %s", report.Path)
	}
}

func TestExplainStrictModeRejectsRepairableSlots(t *testing.T) {
	mixed := `{"assessed_severity":"HIGH","reason_ids":["s1","ghost"],"action_categories":["MONITOR"],"confidence":0.7}`

	strict := New(Config{Client: &fakeClient{text: mixed}, Mode: slots.Strict})
	if _, report := strict.Explain(context.Background(), sampleIncident()); report.Path != PathTemplate {
		t.Fatalf("strict mode should fall back on repairable slots, got %s", report.Path)
	}

	lenient := New(Config{Client: &fakeClient{text: mixed}, Mode: slots.Lenient})
	answer, report := lenient.Explain(context.Background(), sampleIncident())
	if report.Path != PathGenerated {
		t.Fatalf("lenient mode should repair, got %s (%s)", report.Path, report.FallbackReason)
	}
	if report.SlotOutcome != slots.Repaired {
		t.Fatalf("slot outcome = %s, want REPAIRED", report.SlotOutcome)
	}
	if len(answer.EvidenceIDs) != 1 || answer.EvidenceIDs[0] != "s1" {
		t.Fatalf("evidence ids = %v, want only s1", answer.EvidenceIDs)
	}
}

func TestExplainWithoutClientRendersTemplate(t *testing.T) {
	e := New(Config{})
	answer, report := e.Explain(context.Background(), sampleIncident())
	if report.Path != PathTemplate {
		t.Fatalf("expected template path, got %s", report.Path)
	}
	if answer.Headline == "" || answer.Body == "" {
		t.Fatalf("template answer missing text: %+v", answer)
	}
	if len(answer.Steps) == 0 {
		t.Fatalf("template answer has no steps")
	}
}

func TestGeneratedAnswerStillPassesPolicyGuard(t *testing.T) {
	// Low-severity incident; generator claims CRITICAL and recommends a
	// factory reset. Slot validation clamps severity, policy strips the reset.
	incident := sampleIncident()
	incident.Severity = models.SeverityLow
	incident.Events[0].Signals = []models.Signal{
		{ID: "s1", Type: models.FindingNewApp, Severity: models.SeverityLow},
		{ID: "s2", Type: models.FindingOverbroadPermissions, Severity: models.SeverityLow},
	}
	incident.Hypotheses = []models.Hypothesis{{Name: models.HypothesisFeatureExpansion, Confidence: 0.4}}

	alarming := `{"assessed_severity":"CRITICAL","reason_ids":["s1"],"action_categories":["FACTORY_RESET","MONITOR"],"confidence":0.9}`
	e := New(Config{Client: &fakeClient{text: alarming}, Mode: slots.Lenient})

	answer, report := e.Explain(context.Background(), incident)
	if report.Path != PathGenerated {
		t.Fatalf("expected generated path, got %s (%s)", report.Path, report.FallbackReason)
	}
	if answer.Severity.Ordinal() > models.SeverityMedium.Ordinal() {
		t.Fatalf("alarmist severity survived: %s", answer.Severity)
	}
	for _, step := range answer.Steps {
		if step.Category == models.ActionFactoryReset {
			t.Fatalf("factory reset step survived policy validation")
		}
	}
	if report.PolicyCorrections == 0 {
		t.Fatalf("expected counted policy corrections")
	}
}

func TestTemplateAnswerEvidenceAlwaysGrounded(t *testing.T) {
	incident := sampleIncident()
	answer := RenderTemplate(incident)
	truth := incident.EvidenceIDs()
	for _, id := range answer.EvidenceIDs {
		if _, ok := truth[id]; !ok {
			t.Fatalf("template answer cites unknown id %q", id)
		}
	}
	if len(answer.EvidenceIDs) != len(truth) {
		t.Fatalf("template answer cites %d ids, incident has %d", len(answer.EvidenceIDs), len(truth))
	}
}

func TestPromptListsEvidenceAndLimits(t *testing.T) {
	incident := sampleIncident()
	prompt := BuildPrompt(incident, models.ConstraintSet{
		models.ForbidVirusClaim:   {},
		models.ForbidMalwareClaim: {},
	})
	for _, want := range []string{"[s1]", "[s2]", "[e1]", "REPACKAGED_APP", "Do not call the app a virus", "Do not claim the app is malware"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
