package slots

import (
	"strings"
	"testing"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func TestParseBareJSON(t *testing.T) {
	slots, err := Parse(`{"assessed_severity":"HIGH","reason_ids":["s1","s2"],"action_categories":["UNINSTALL"],"confidence":0.8}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if slots.Severity != models.SeverityHigh {
		t.Fatalf("severity = %s, want HIGH", slots.Severity)
	}
	if len(slots.EvidenceIDs) != 2 {
		t.Fatalf("expected 2 evidence ids, got %v", slots.EvidenceIDs)
	}
}

func TestParseMarkdownFencedJSON(t *testing.T) {
	raw := "```json\n{\"assessed_severity\":\"CRITICAL\",\"reason_ids\":[\"s1\"],\"action_categories\":[\"UNINSTALL\"],\"confidence\":0.95}\n```"
	slots, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if slots.Severity != models.SeverityCritical {
		t.Fatalf("severity = %s, want CRITICAL", slots.Severity)
	}
	if slots.Confidence != 0.95 {
		t.Fatalf("confidence = %f, want 0.95", slots.Confidence)
	}
}

func TestParseTextWithPreambleAndPostamble(t *testing.T) {
	raw := "Here is my assessment of the app:\n" +
		`{"assessed_severity":"medium","reason_ids":["s1"],"action_categories":["monitor"],"confidence":0.5}` +
		"\nLet me know if you need more detail."
	slots, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if slots.Severity != models.SeverityMedium {
		t.Fatalf("severity = %s, want MEDIUM", slots.Severity)
	}
	if slots.Actions[0] != models.ActionMonitor {
		t.Fatalf("action = %s, want MONITOR", slots.Actions[0])
	}
}

func TestParseBracesInsideStringsDoNotBreakBalance(t *testing.T) {
	raw := `{"assessed_severity":"LOW","reason_ids":["s1"],"action_categories":["MONITOR"],"confidence":0.3,"notes":"detail: {nested} and \"quoted\""}`
	slots, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !strings.Contains(slots.Notes, "{nested}") {
		t.Fatalf("notes lost content: %q", slots.Notes)
	}
}

func TestParseConfidenceOutsideRangeFails(t *testing.T) {
	for _, conf := range []string{"1.5", "-0.2"} {
		_, err := Parse(`{"assessed_severity":"HIGH","reason_ids":["s1"],"action_categories":["MONITOR"],"confidence":` + conf + `}`)
		if err == nil {
			t.Fatalf("confidence %s should fail parsing", conf)
		}
	}
}

func TestParseMissingRequiredFieldsFails(t *testing.T) {
	cases := map[string]string{
		"no severity":    `{"reason_ids":["s1"],"action_categories":["MONITOR"],"confidence":0.5}`,
		"empty ids":      `{"assessed_severity":"HIGH","reason_ids":[],"action_categories":["MONITOR"],"confidence":0.5}`,
		"no actions":     `{"assessed_severity":"HIGH","reason_ids":["s1"],"action_categories":["DANCE"],"confidence":0.5}`,
		"no confidence":  `{"assessed_severity":"HIGH","reason_ids":["s1"],"action_categories":["MONITOR"]}`,
		"no object":      "the model refused to answer",
		"unbalanced":     `{"assessed_severity":"HIGH","reason_ids":["s1"`,
		"bad severity":   `{"assessed_severity":"APOCALYPTIC","reason_ids":["s1"],"action_categories":["MONITOR"],"confidence":0.5}`,
	}
	for name, raw := range cases {
		if _, err := Parse(raw); err == nil {
			t.Fatalf("%s: expected parse error", name)
		}
	}
}

func TestParseTruncatesOversizedLists(t *testing.T) {
	ids := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		ids = append(ids, `"id`+strings.Repeat("x", i)+`"`)
	}
	raw := `{"assessed_severity":"HIGH","reason_ids":[` + strings.Join(ids, ",") + `],"action_categories":["MONITOR"],"confidence":0.5,"notes":"` + strings.Repeat("n", 2000) + `"}`

	slots, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(slots.EvidenceIDs) != maxEvidenceIDs {
		t.Fatalf("expected ids truncated to %d, got %d", maxEvidenceIDs, len(slots.EvidenceIDs))
	}
	if len(slots.Notes) != maxNotesLength {
		t.Fatalf("expected notes truncated to %d, got %d", maxNotesLength, len(slots.Notes))
	}
}

func TestParseSkipsUnrecognizedActions(t *testing.T) {
	slots, err := Parse(`{"assessed_severity":"HIGH","reason_ids":["s1"],"action_categories":["SELF_DESTRUCT","UNINSTALL"],"confidence":0.5}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(slots.Actions) != 1 || slots.Actions[0] != models.ActionUninstall {
		t.Fatalf("expected only UNINSTALL to survive, got %v", slots.Actions)
	}
}
