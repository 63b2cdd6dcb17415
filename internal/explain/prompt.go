package explain

import (
	"fmt"
	"strings"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// BuildPrompt lays out the incident's facts with their real evidence ids and
// asks for the structured-slot JSON shape. The model is told the allow-lists;
// the guards still verify every field afterwards.
func BuildPrompt(incident models.Incident, constraints models.ConstraintSet) string {
	var b strings.Builder

	b.WriteString("You explain mobile app security incidents to a non-technical user.\n")
	fmt.Fprintf(&b, "Incident severity: %s. App package: %s.\n\n", incident.Severity, incident.Package)

	b.WriteString("Evidence (refer to items only by their id):\n")
	for _, ev := range incident.Events {
		fmt.Fprintf(&b, "- [%s] event %s\n", ev.ID, ev.Type)
		for _, sig := range ev.Signals {
			fmt.Fprintf(&b, "  - [%s] %s (%s)", sig.ID, sig.Type, sig.Severity)
			if sig.Summary != "" {
				fmt.Fprintf(&b, ": %s", sig.Summary)
			}
			b.WriteByte('\n')
		}
	}

	if len(incident.Hypotheses) > 0 {
		b.WriteString("\nCandidate explanations, most likely first:\n")
		for _, h := range incident.Hypotheses {
			fmt.Fprintf(&b, "- %s (confidence %.2f)", h.Name, h.Confidence)
			if h.Summary != "" {
				fmt.Fprintf(&b, ": %s", h.Summary)
			}
			b.WriteByte('\n')
		}
	}

	b.WriteString("\nLanguage limits for this incident:\n")
	for _, rule := range constraintInstructions(constraints) {
		fmt.Fprintf(&b, "- %s\n", rule)
	}

	b.WriteString("\nRespond with a single JSON object and nothing else:\n")
	b.WriteString(`{"assessed_severity":"CRITICAL|HIGH|MEDIUM|LOW|INFO",` + "\n")
	b.WriteString(` "reason_ids":["<evidence ids from above>"],` + "\n")
	b.WriteString(` "action_categories":["MONITOR","REVIEW_PERMISSIONS","DISABLE_CAPABILITY","UPDATE_APP","UNINSTALL","FACTORY_RESET"],` + "\n")
	b.WriteString(` "confidence":0.0,` + "\n")
	b.WriteString(` "can_be_ignored":false,` + "\n")
	b.WriteString(` "ignore_reason":"KNOWN_BENIGN_BEHAVIOR|USER_INITIATED_CHANGE|MANAGED_DEVICE_POLICY|LOW_CONFIDENCE_SIGNAL",` + "\n")
	b.WriteString(` "notes":"one short paragraph for the user"}` + "\n")

	return b.String()
}

func constraintInstructions(constraints models.ConstraintSet) []string {
	rules := []string{"Never invent evidence ids; use only the ids listed above."}
	if constraints.Has(models.ForbidVirusClaim) {
		rules = append(rules, "Do not call the app a virus.")
	}
	if constraints.Has(models.ForbidMalwareClaim) {
		rules = append(rules, "Do not claim the app is malware.")
	}
	if constraints.Has(models.ForbidCompromiseClaim) {
		rules = append(rules, "Do not claim the device is compromised.")
	}
	if constraints.Has(models.ForbidSpyingClaim) {
		rules = append(rules, "Do not claim anyone is spying on the user.")
	}
	if constraints.Has(models.ForbidFactoryReset) {
		rules = append(rules, "Do not recommend a factory reset.")
	}
	if constraints.Has(models.ForbidAlarmistFraming) {
		rules = append(rules, "Keep a calm, informational tone; this is not urgent.")
	}
	return rules
}
