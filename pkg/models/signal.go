package models

import "time"

// Signal is the atomic evidence unit shared by every downstream component.
// Immutable once created; ids are unique at creation and never reused.
type Signal struct {
	ID       string            `json:"id"`
	Source   string            `json:"source,omitempty"`
	Type     FindingType       `json:"type"`
	Severity Severity          `json:"severity"`
	Package  string            `json:"package"`
	Summary  string            `json:"summary,omitempty"`
	Detail   map[string]string `json:"detail,omitempty"`
}

// EventType names a correlation of signals the hypothesis resolver knows how
// to explain.
type EventType string

const (
	EventSuspiciousUpdate      EventType = "SUSPICIOUS_UPDATE"
	EventNewTrustedRootCert    EventType = "NEW_TRUSTED_ROOT_CERT"
	EventCapabilityEscalation  EventType = "CAPABILITY_ESCALATION"
	EventSideloadInstall       EventType = "SIDELOAD_INSTALL"
	EventPermissionSurge       EventType = "PERMISSION_SURGE"
	EventStalkerwarePattern    EventType = "STALKERWARE_PATTERN"
	EventCertificateDrift      EventType = "CERTIFICATE_DRIFT"
)

// Event is a named, time-stamped correlation of one or more signals.
type Event struct {
	ID       string    `json:"id"`
	Type     EventType `json:"type"`
	Severity Severity  `json:"severity"`
	Package  string    `json:"package"`
	StartTS  time.Time `json:"start_ts"`
	Signals  []Signal  `json:"signals,omitempty"`
}
