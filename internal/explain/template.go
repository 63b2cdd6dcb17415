// Package explain renders user-facing answers for incidents. The generated
// path asks a text model and guards its output; the template path is the
// deterministic fallback that can never fail. Both paths end in the same
// policy validation.
package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/policy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// RenderTemplate builds an answer purely from the incident's own fields. Its
// evidence ids, steps, and severity come straight from the incident, so the
// result always grounds and only needs the policy pass for language limits.
func RenderTemplate(incident models.Incident) models.Answer {
	constraints := policy.DetermineConstraints(incident)

	steps := make([]models.RecommendedAction, 0, len(incident.Actions))
	for _, action := range incident.Actions {
		if !policy.IsActionAllowed(action.Category, constraints) {
			continue
		}
		steps = append(steps, action)
	}
	for i := range steps {
		steps[i].Step = i + 1
	}

	confidence := 0.5
	if top, ok := incident.TopHypothesis(); ok {
		confidence = top.Confidence
	}

	return models.Answer{
		IncidentID:  incident.ID,
		Severity:    incident.Severity,
		Headline:    headline(incident, constraints),
		Body:        body(incident, constraints),
		EvidenceIDs: sortedEvidenceIDs(incident),
		Steps:       steps,
		Confidence:  models.ClampConfidence(confidence),
		Generated:   false,
	}
}

func headline(incident models.Incident, constraints models.ConstraintSet) string {
	if incident.Title != "" {
		return incident.Title
	}
	return fmt.Sprintf("Unusual activity from %s", incident.Package)
}

func body(incident models.Incident, constraints models.ConstraintSet) string {
	var b strings.Builder

	top, hasTop := incident.TopHypothesis()
	switch {
	case hasTop && top.Summary != "":
		fmt.Fprintf(&b, "The most likely explanation: %s.", top.Summary)
	case incident.Summary != "":
		b.WriteString(incident.Summary + ".")
	default:
		fmt.Fprintf(&b, "We noticed activity from %s that is worth a look.", incident.Package)
	}

	if hasTop && len(incident.Hypotheses) > 1 {
		alt := incident.Hypotheses[1]
		if alt.Summary != "" {
			fmt.Fprintf(&b, " It could also be that %s.", lowerFirst(alt.Summary))
		}
	}

	if constraints.Has(models.ForbidAlarmistFraming) {
		b.WriteString(" This is informational and no urgent action is required.")
	} else if hard := policy.HardFindingTypes(incident); len(hard) > 0 {
		fmt.Fprintf(&b, " This is backed by %d strong piece(s) of evidence.", len(hard))
	}

	return b.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func sortedEvidenceIDs(incident models.Incident) []string {
	set := incident.EvidenceIDs()
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
