package models

// Hardness classifies how much evidentiary weight a finding type carries.
//
// HARD findings survive every trust and profile adjustment. SOFT findings may
// be downgraded under trust or suppressed under the SYSTEM profile.
// WEAK_SIGNAL findings may be suppressed entirely.
type Hardness string

const (
	HardnessHard Hardness = "HARD"
	HardnessSoft Hardness = "SOFT"
	HardnessWeak Hardness = "WEAK_SIGNAL"
)

var hardnessRank = map[Hardness]int{
	HardnessHard: 3,
	HardnessSoft: 2,
	HardnessWeak: 1,
}

// Rank orders hardness for reason ranking, HARD highest.
func (h Hardness) Rank() int {
	return hardnessRank[h]
}

// FindingType is the closed enumeration of observation types the evaluator
// understands. The taxonomy package owns the hardness projection.
type FindingType string

const (
	// Hard evidence.
	FindingCertBaselineDrift    FindingType = "CERT_BASELINE_DRIFT"
	FindingCertMismatch         FindingType = "CERT_MISMATCH"
	FindingPartitionMismatch    FindingType = "PARTITION_MISMATCH"
	FindingCapabilityAdded      FindingType = "HIGH_RISK_CAPABILITY_ADDED"
	FindingKnownStalkerware     FindingType = "KNOWN_STALKERWARE_PACKAGE"

	// Soft hygiene evidence.
	FindingStaleTargetVersion   FindingType = "STALE_TARGET_VERSION"
	FindingOverbroadPermissions FindingType = "OVERBROAD_PERMISSIONS"
	FindingExportedComponents   FindingType = "EXPORTED_COMPONENTS"
	FindingHighRiskCapability   FindingType = "HIGH_RISK_CAPABILITY"
	FindingInstallerAnomaly     FindingType = "VERIFIED_INSTALLER_ANOMALY"
	FindingNonCanonicalSigner   FindingType = "NON_CANONICAL_SIGNER"
	FindingSideloadedInstaller  FindingType = "SIDELOADED_INSTALLER"
	FindingBaselineDelta        FindingType = "BASELINE_DELTA"

	// Weak signals.
	FindingNewApp               FindingType = "NEWLY_OBSERVED_APP"
	FindingUnusualInstallTime   FindingType = "UNUSUAL_INSTALL_TIME"
	FindingLowPrevalence        FindingType = "LOW_INSTALL_PREVALENCE"
)

// RawFinding is one typed observation handed to the risk evaluator by an
// upstream evidence producer. Immutable once created.
type RawFinding struct {
	Type     FindingType       `json:"type"`
	Severity Severity          `json:"severity"`
	Message  string            `json:"message,omitempty"`
	Detail   map[string]string `json:"detail,omitempty"`
}

// AdjustedFinding pairs a raw finding with its trust-adjusted severity and the
// priority used when ranking verdict reasons.
type AdjustedFinding struct {
	Finding         RawFinding `json:"finding"`
	Hardness        Hardness   `json:"hardness"`
	EffectiveSev    Severity   `json:"effective_severity"`
	Downgraded      bool       `json:"downgraded"`
	Suppressed      bool       `json:"suppressed,omitempty"`
	ExplainPriority int        `json:"explain_priority"`
}
