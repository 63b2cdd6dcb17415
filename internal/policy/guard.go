// Package policy constrains user-facing language to what the evidence
// supports. Constraints are determined per incident; the validation pass
// repairs a draft answer instead of rejecting it, counting every correction.
package policy

import (
	"sort"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/taxonomy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Confidence floors a hypothesis must clear before a claim class unlocks.
// Compromise claims are held to a stricter bar than malware claims.
const (
	malwareConfidenceFloor    = 0.6
	compromiseConfidenceFloor = 0.7
)

// DetermineConstraints evaluates every constraint rule independently and
// returns the active safe-language flags for the incident.
func DetermineConstraints(incident models.Incident) models.ConstraintSet {
	constraints := models.ConstraintSet{}
	add := func(flag models.SafeLanguageFlag) { constraints[flag] = struct{}{} }

	// No finding type maps to "virus" on this platform; the claim is never
	// supportable.
	add(models.ForbidVirusClaim)

	hardTypes := HardFindingTypes(incident)
	hasHard := len(hardTypes) > 0
	top, hasTop := incident.TopHypothesis()

	if !hasHard || !hasTop || top.Confidence <= malwareConfidenceFloor {
		add(models.ForbidMalwareClaim)
	}
	if !hasHard || !hasTop || top.Confidence < compromiseConfidenceFloor {
		add(models.ForbidCompromiseClaim)
	}
	if !spyingClaimSupported(incident, hasHard) {
		add(models.ForbidSpyingClaim)
	}
	if incident.Severity != models.SeverityCritical || !hasHard {
		add(models.ForbidFactoryReset)
	}
	if incident.Severity == models.SeverityInfo || incident.Severity == models.SeverityLow {
		add(models.ForbidAlarmistFraming)
	}

	return constraints
}

// spyingClaimSupported requires a stalkerware-pattern signal combination, a
// hard finding, and a confirmed-stalkerware-class top hypothesis.
func spyingClaimSupported(incident models.Incident, hasHard bool) bool {
	if !hasHard {
		return false
	}
	pattern := false
	for _, ev := range incident.Events {
		if ev.Type == models.EventStalkerwarePattern {
			pattern = true
			break
		}
		for _, sig := range ev.Signals {
			if sig.Type == models.FindingKnownStalkerware {
				pattern = true
				break
			}
		}
	}
	if !pattern {
		return false
	}
	top, ok := incident.TopHypothesis()
	return ok && top.Name == models.HypothesisConfirmedStalkerware
}

// IsActionAllowed reports whether the action category may appear in an answer
// under the given constraints. Usable before a draft answer exists.
func IsActionAllowed(cat models.ActionCategory, constraints models.ConstraintSet) bool {
	if cat == models.ActionFactoryReset && constraints.Has(models.ForbidFactoryReset) {
		return false
	}
	return true
}

// ValidateAnswer repairs a draft answer so it satisfies the incident's
// constraints, returning the corrected answer and the number of corrections
// applied. The input answer is never mutated.
func ValidateAnswer(answer models.Answer, incident models.Incident) (models.Answer, int) {
	constraints := DetermineConstraints(incident)
	violations := 0
	out := answer

	if constraints.Has(models.ForbidFactoryReset) {
		steps := make([]models.RecommendedAction, 0, len(out.Steps))
		for _, step := range out.Steps {
			if step.Category == models.ActionFactoryReset {
				violations++
				continue
			}
			steps = append(steps, step)
		}
		for i := range steps {
			steps[i].Step = i + 1
		}
		out.Steps = steps
	} else {
		out.Steps = append([]models.RecommendedAction(nil), out.Steps...)
	}

	if constraints.Has(models.ForbidAlarmistFraming) {
		if out.Severity.Ordinal() > models.SeverityMedium.Ordinal() {
			out.Severity = models.SeverityMedium
			violations++
		}
	} else if out.Severity == models.SeverityCritical &&
		(constraints.Has(models.ForbidMalwareClaim) || constraints.Has(models.ForbidCompromiseClaim)) {
		// A CRITICAL framing is itself an unsupported claim here.
		out.Severity = models.SeverityHigh
		violations++
	}

	out.Confidence = models.ClampConfidence(out.Confidence)
	return out, violations
}

// HardFindingTypes extracts the distinct HARD-hardness finding types present
// in the incident's signals: the bridge between the evidence layer and this
// policy layer.
func HardFindingTypes(incident models.Incident) []models.FindingType {
	seen := make(map[models.FindingType]bool)
	for _, ev := range incident.Events {
		for _, sig := range ev.Signals {
			if taxonomy.HardnessOf(sig.Type) == models.HardnessHard {
				seen[sig.Type] = true
			}
		}
	}
	out := make([]models.FindingType, 0, len(seen))
	for ft := range seen {
		out = append(out, ft)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
