package models

import (
	"sort"
	"time"
)

// HypothesisName identifies a causal theory.
type HypothesisName string

const (
	HypothesisMaliciousUpdate     HypothesisName = "MALICIOUS_UPDATE"
	HypothesisLegitimateUpdate    HypothesisName = "LEGITIMATE_UPDATE"
	HypothesisTrafficInterception HypothesisName = "TRAFFIC_INTERCEPTION"
	HypothesisManagedEnrollment   HypothesisName = "MANAGED_DEVICE_ENROLLMENT"
	HypothesisPrivilegeGrab       HypothesisName = "PRIVILEGE_GRAB"
	HypothesisFeatureExpansion    HypothesisName = "FEATURE_EXPANSION"
	HypothesisUntrustedSource     HypothesisName = "UNTRUSTED_SOURCE_INSTALL"
	HypothesisIntentionalSideload HypothesisName = "INTENTIONAL_SIDELOAD"
	HypothesisPermissionAbuse     HypothesisName = "PERMISSION_ABUSE"
	HypothesisConfirmedStalkerware HypothesisName = "CONFIRMED_STALKERWARE"
	HypothesisCoveredMonitoring   HypothesisName = "COVERT_MONITORING"
	HypothesisRepackagedApp       HypothesisName = "REPACKAGED_APP"
	HypothesisKeyRotation         HypothesisName = "LEGITIMATE_KEY_ROTATION"
)

// Hypothesis is one causal theory with its confidence and evidence links.
// Confidence is always clamped to [0,1].
type Hypothesis struct {
	Name          HypothesisName `json:"name"`
	Summary       string         `json:"summary,omitempty"`
	Confidence    float64        `json:"confidence"`
	Supporting    []string       `json:"supporting_ids,omitempty"`
	Contradicting []string       `json:"contradicting_ids,omitempty"`
}

// ActionCategory is a recommended remediation class.
type ActionCategory string

const (
	ActionMonitor           ActionCategory = "MONITOR"
	ActionReviewPermissions ActionCategory = "REVIEW_PERMISSIONS"
	ActionDisableCapability ActionCategory = "DISABLE_CAPABILITY"
	ActionUpdateApp         ActionCategory = "UPDATE_APP"
	ActionUninstall         ActionCategory = "UNINSTALL"
	ActionFactoryReset      ActionCategory = "FACTORY_RESET"
)

// RecommendedAction is one numbered remediation step.
type RecommendedAction struct {
	Step     int            `json:"step"`
	Category ActionCategory `json:"category"`
	Text     string         `json:"text,omitempty"`
}

// IncidentStatus is the incident lifecycle state. FALSE_POSITIVE is terminal.
type IncidentStatus string

const (
	StatusNew           IncidentStatus = "NEW"
	StatusInvestigating IncidentStatus = "INVESTIGATING"
	StatusConfirmed     IncidentStatus = "CONFIRMED"
	StatusResolved      IncidentStatus = "RESOLVED"
	StatusFalsePositive IncidentStatus = "FALSE_POSITIVE"
)

// Incident is the aggregate produced by the hypothesis resolver. Edits always
// produce a new value; the contained slices are never mutated in place.
type Incident struct {
	ID         string              `json:"id"`
	Severity   Severity            `json:"severity"`
	Title      string              `json:"title"`
	Summary    string              `json:"summary,omitempty"`
	Package    string              `json:"package"`
	CreatedAt  time.Time           `json:"created_at"`
	Events     []Event             `json:"events"`
	Hypotheses []Hypothesis        `json:"hypotheses"`
	Actions    []RecommendedAction `json:"actions"`
	Status     IncidentStatus      `json:"status"`
}

// TopHypothesis returns the highest-confidence hypothesis, or false when the
// incident has none.
func (in Incident) TopHypothesis() (Hypothesis, bool) {
	if len(in.Hypotheses) == 0 {
		return Hypothesis{}, false
	}
	return in.Hypotheses[0], true
}

// EvidenceIDs returns the set of all signal and event ids contained in the
// incident. This is the ground truth the slot guard validates against.
func (in Incident) EvidenceIDs() map[string]struct{} {
	ids := make(map[string]struct{}, len(in.Events)*4)
	for _, ev := range in.Events {
		if ev.ID != "" {
			ids[ev.ID] = struct{}{}
		}
		for _, sig := range ev.Signals {
			if sig.ID != "" {
				ids[sig.ID] = struct{}{}
			}
		}
	}
	return ids
}

// WithStatus returns a copy of the incident in the given lifecycle state. A
// terminal FALSE_POSITIVE incident is returned unchanged.
func (in Incident) WithStatus(status IncidentStatus) Incident {
	if in.Status == StatusFalsePositive {
		return in
	}
	out := in
	out.Status = status
	return out
}

// WithHypotheses returns a copy of the incident with the given hypotheses,
// sorted by confidence descending with a stable name tie-break.
func (in Incident) WithHypotheses(hs []Hypothesis) Incident {
	out := in
	out.Hypotheses = SortHypotheses(hs)
	return out
}

// SortHypotheses returns a new slice ordered by confidence descending, then
// name ascending for determinism.
func SortHypotheses(hs []Hypothesis) []Hypothesis {
	sorted := append([]Hypothesis(nil), hs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Confidence != sorted[j].Confidence {
			return sorted[i].Confidence > sorted[j].Confidence
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// ClampConfidence clamps a confidence value to [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
