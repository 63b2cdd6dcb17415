package models

// TrustLevel buckets the trust score.
type TrustLevel string

const (
	TrustHigh      TrustLevel = "HIGH"
	TrustModerate  TrustLevel = "MODERATE"
	TrustLow       TrustLevel = "LOW"
	TrustAnomalous TrustLevel = "ANOMALOUS"
)

// AtLeastModerate reports whether the level is MODERATE or HIGH.
func (t TrustLevel) AtLeastModerate() bool {
	return t == TrustHigh || t == TrustModerate
}

// CertMatchResult is the outcome of the certificate-matching lookup.
type CertMatchResult string

const (
	CertMatch    CertMatchResult = "MATCH"
	CertMismatch CertMatchResult = "MISMATCH"
	CertNoEntry  CertMatchResult = "NO_ENTRY"
)

// TrustDomain classifies an app's signing/provenance regime. A lookup entry
// tagged for one domain is only comparable to callers in the same domain.
type TrustDomain string

const (
	DomainPlatform       TrustDomain = "PLATFORM_SIGNED"
	DomainEmbeddedModule TrustDomain = "EMBEDDED_MODULE"
	DomainOEMVendor      TrustDomain = "OEM_VENDOR"
	DomainStoreSigned    TrustDomain = "STORE_SIGNED"
	DomainUnknown        TrustDomain = "UNKNOWN"
)

// InstallClass is the install origin of an app.
type InstallClass string

const (
	InstallSystemPreinstalled InstallClass = "SYSTEM_PREINSTALLED"
	InstallEnterpriseManaged  InstallClass = "ENTERPRISE_MANAGED"
	InstallUserInstalled      InstallClass = "USER_INSTALLED"
)

// InstallerInfo describes installer provenance.
type InstallerInfo struct {
	Package    string `json:"package,omitempty"`
	Verified   bool   `json:"verified"`
	Sideloaded bool   `json:"sideloaded"`
}

// PartitionInfo describes where the package actually lives on disk versus what
// it claims.
type PartitionInfo struct {
	SystemFlagged      bool   `json:"system_flagged"`
	InstallPath        string `json:"install_path,omitempty"`
	ClaimedPartition   string `json:"claimed_partition,omitempty"`
	UpdatedPreinstall  bool   `json:"updated_preinstall"`
	OnClaimedPartition bool   `json:"on_claimed_partition"`
}

// SigningInfo describes signing lineage.
type SigningInfo struct {
	Domain          TrustDomain `json:"domain"`
	LineageVerified bool        `json:"lineage_verified"`
	Rotated         bool        `json:"rotated"`
	BaselineDigest  string      `json:"baseline_digest,omitempty"`
	CurrentDigest   string      `json:"current_digest,omitempty"`
}

// DeviceIntegrity carries the device-level attestation state.
type DeviceIntegrity struct {
	VerifiedBoot bool `json:"verified_boot"`
	Rooted       bool `json:"rooted"`
}

// TrustEvidence is the trust picture for one app, produced upstream.
type TrustEvidence struct {
	Score           int             `json:"score"`
	Level           TrustLevel      `json:"level"`
	CertMatch       CertMatchResult `json:"cert_match"`
	CertEntryDomain TrustDomain     `json:"cert_entry_domain,omitempty"`
	Installer       InstallerInfo   `json:"installer"`
	Partition       PartitionInfo   `json:"partition"`
	Signing         SigningInfo     `json:"signing"`
	Device          DeviceIntegrity `json:"device"`
}

// AppCategory is the store/declared category of an app, used by the
// expected-capability table and the WEAK_SIGNAL whitelist.
type AppCategory string

const (
	CategoryMessaging         AppCategory = "MESSAGING"
	CategoryDialer            AppCategory = "DIALER"
	CategoryAccessibilityTool AppCategory = "ACCESSIBILITY_TOOL"
	CategoryLauncher          AppCategory = "LAUNCHER"
	CategoryVPNClient         AppCategory = "VPN_CLIENT"
	CategoryAppStore          AppCategory = "APP_STORE"
	CategoryDeviceManagement  AppCategory = "DEVICE_MANAGEMENT"
	CategoryAutomation        AppCategory = "AUTOMATION"
	CategoryNavigation        AppCategory = "NAVIGATION"
	CategoryFitness           AppCategory = "FITNESS"
	CategorySecurity          AppCategory = "SECURITY"
	CategoryUnknown           AppCategory = "UNKNOWN"
)
