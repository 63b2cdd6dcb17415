package models

// SafeLanguageFlag is one constraint forbidding a class of claim or
// destructive action in user-facing output.
type SafeLanguageFlag string

const (
	ForbidVirusClaim      SafeLanguageFlag = "FORBID_VIRUS_CLAIM"
	ForbidMalwareClaim    SafeLanguageFlag = "FORBID_MALWARE_CLAIM"
	ForbidCompromiseClaim SafeLanguageFlag = "FORBID_COMPROMISE_CLAIM"
	ForbidSpyingClaim     SafeLanguageFlag = "FORBID_SPYING_CLAIM"
	ForbidFactoryReset    SafeLanguageFlag = "FORBID_FACTORY_RESET"
	ForbidAlarmistFraming SafeLanguageFlag = "FORBID_ALARMIST_FRAMING"
)

// ConstraintSet is a set of active safe-language flags.
type ConstraintSet map[SafeLanguageFlag]struct{}

// Has reports whether the flag is active.
func (c ConstraintSet) Has(flag SafeLanguageFlag) bool {
	_, ok := c[flag]
	return ok
}

// IgnoreReason is the fixed allow-list of reasons an answer may present an
// incident as ignorable.
type IgnoreReason string

const (
	IgnoreKnownBenign     IgnoreReason = "KNOWN_BENIGN_BEHAVIOR"
	IgnoreUserInitiated   IgnoreReason = "USER_INITIATED_CHANGE"
	IgnoreManagedDevice   IgnoreReason = "MANAGED_DEVICE_POLICY"
	IgnoreLowConfidence   IgnoreReason = "LOW_CONFIDENCE_SIGNAL"
)

// StructuredSlots is the structured result a text generator is asked to
// produce, before guard validation.
type StructuredSlots struct {
	Severity     Severity         `json:"assessed_severity"`
	EvidenceIDs  []string         `json:"reason_ids"`
	Actions      []ActionCategory `json:"action_categories"`
	Confidence   float64          `json:"confidence"`
	CanBeIgnored bool             `json:"can_be_ignored,omitempty"`
	IgnoreReason IgnoreReason     `json:"ignore_reason,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// Answer is a rendered explanation candidate. Policy-guard corrections always
// produce a new value.
type Answer struct {
	IncidentID   string              `json:"incident_id"`
	Severity     Severity            `json:"severity"`
	Headline     string              `json:"headline,omitempty"`
	Body         string              `json:"body,omitempty"`
	EvidenceIDs  []string            `json:"evidence_ids"`
	Steps        []RecommendedAction `json:"steps,omitempty"`
	Confidence   float64             `json:"confidence"`
	CanBeIgnored bool                `json:"can_be_ignored,omitempty"`
	IgnoreReason IgnoreReason        `json:"ignore_reason,omitempty"`
	Notes        string              `json:"notes,omitempty"`
	Generated    bool                `json:"generated"`
}
