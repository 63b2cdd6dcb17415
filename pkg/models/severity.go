package models

import "strings"

// Severity is the ordinal severity of a single observation.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

var severityOrdinal = map[Severity]int{
	SeverityInfo:     1,
	SeverityLow:      2,
	SeverityMedium:   3,
	SeverityHigh:     4,
	SeverityCritical: 5,
}

var severityWeight = map[Severity]int{
	SeverityCritical: 40,
	SeverityHigh:     25,
	SeverityMedium:   15,
	SeverityLow:      5,
	SeverityInfo:     1,
}

var severityByOrdinal = map[int]Severity{
	1: SeverityInfo,
	2: SeverityLow,
	3: SeverityMedium,
	4: SeverityHigh,
	5: SeverityCritical,
}

// Ordinal returns the rank of the severity, 1 (INFO) through 5 (CRITICAL).
// Unknown values rank as 0.
func (s Severity) Ordinal() int {
	return severityOrdinal[s]
}

// Weight returns the numeric risk-score weight of the severity.
func (s Severity) Weight() int {
	return severityWeight[s]
}

// StepDown lowers the severity by n ordinal steps, flooring at INFO.
func (s Severity) StepDown(n int) Severity {
	ord := s.Ordinal()
	if ord == 0 {
		return s
	}
	ord -= n
	if ord < 1 {
		ord = 1
	}
	return severityByOrdinal[ord]
}

// ParseSeverity normalizes a severity string. Unrecognized values return
// ("", false).
func ParseSeverity(v string) (Severity, bool) {
	s := Severity(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := severityOrdinal[s]; !ok {
		return "", false
	}
	return s, true
}

// RiskLevel is the effective verdict level for one app.
type RiskLevel string

const (
	RiskSafe           RiskLevel = "SAFE"
	RiskInfo           RiskLevel = "INFO"
	RiskNeedsAttention RiskLevel = "NEEDS_ATTENTION"
	RiskCritical       RiskLevel = "CRITICAL"
)

var riskOrdinal = map[RiskLevel]int{
	RiskSafe:           0,
	RiskInfo:           1,
	RiskNeedsAttention: 2,
	RiskCritical:       3,
}

// Ordinal returns the rank of the risk level, 0 (SAFE) through 3 (CRITICAL).
func (r RiskLevel) Ordinal() int {
	return riskOrdinal[r]
}

// Max returns the higher of two risk levels.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.Ordinal() > r.Ordinal() {
		return other
	}
	return r
}
