package models

import "time"

// AppSnapshot is the wire format of one collected observation of an installed
// app: its trust evidence, raw findings, capability grants, and any
// correlated events that arrived with it.
type AppSnapshot struct {
	SnapshotID   string          `json:"snapshot_id"`
	Package      string          `json:"package"`
	CollectedAt  time.Time       `json:"collected_at"`
	IsSystemApp  bool            `json:"is_system_app"`
	Category     AppCategory     `json:"category,omitempty"`
	InstallClass InstallClass    `json:"install_class,omitempty"`
	Trust        TrustEvidence   `json:"trust"`
	Findings     []RawFinding    `json:"findings,omitempty"`
	Granted      []Capability    `json:"granted,omitempty"`
	Enablement   EnablementState `json:"enablement,omitempty"`
	Events       []Event         `json:"events,omitempty"`
}

// DedupeKey identifies a snapshot for duplicate suppression. Snapshots for
// the same package at the same collection instant are considered the same
// observation even when the id differs.
func (s AppSnapshot) DedupeKey() string {
	if s.SnapshotID != "" {
		return s.SnapshotID
	}
	return s.Package + "@" + s.CollectedAt.UTC().Format(time.RFC3339Nano)
}
