package risk

import (
	"strings"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// ClassifyDomain determines the signing/provenance domain of an app from its
// partition and signing metadata. Certificate lookups only count within the
// same domain: a platform-signed component differing from a store-signed
// developer entry is expected, not evidence.
func ClassifyDomain(trust models.TrustEvidence) models.TrustDomain {
	if trust.Signing.Domain != "" && trust.Signing.Domain != models.DomainUnknown {
		return trust.Signing.Domain
	}
	if trust.Partition.SystemFlagged {
		switch strings.ToLower(strings.TrimSpace(trust.Partition.ClaimedPartition)) {
		case "system":
			return models.DomainPlatform
		case "apex", "module":
			return models.DomainEmbeddedModule
		case "vendor", "product", "oem", "odm":
			return models.DomainOEMVendor
		}
	}
	if trust.Installer.Verified && !trust.Installer.Sideloaded {
		return models.DomainStoreSigned
	}
	return models.DomainUnknown
}

// deriveTrustFindings turns trust evidence into typed findings so the
// adjustment and rule passes treat them uniformly with producer findings.
func deriveTrustFindings(trust models.TrustEvidence) []models.RawFinding {
	var out []models.RawFinding
	domain := ClassifyDomain(trust)

	// Drift versus a previously recorded baseline certificate is hard
	// evidence regardless of domain.
	if trust.Signing.BaselineDigest != "" && trust.Signing.CurrentDigest != "" &&
		trust.Signing.BaselineDigest != trust.Signing.CurrentDigest {
		out = append(out, models.RawFinding{
			Type:     models.FindingCertBaselineDrift,
			Severity: models.SeverityCritical,
			Message:  "signing certificate differs from the recorded baseline",
			Detail: map[string]string{
				"baseline": trust.Signing.BaselineDigest,
				"current":  trust.Signing.CurrentDigest,
			},
		})
	}

	// A lookup mismatch only counts when the entry was recorded for the same
	// signing domain as the caller.
	if trust.CertMatch == models.CertMismatch && trust.CertEntryDomain == domain {
		out = append(out, models.RawFinding{
			Type:     models.FindingCertMismatch,
			Severity: models.SeverityHigh,
			Message:  "signing certificate does not match the known entry for this app",
			Detail:   map[string]string{"domain": string(domain)},
		})
	}

	// A system-flagged component living outside its claimed partition, unless
	// it is a legitimately updated preinstall.
	if trust.Partition.SystemFlagged && !trust.Partition.OnClaimedPartition && !trust.Partition.UpdatedPreinstall {
		out = append(out, models.RawFinding{
			Type:     models.FindingPartitionMismatch,
			Severity: models.SeverityHigh,
			Message:  "system component install location does not match its claimed partition",
			Detail: map[string]string{
				"claimed": trust.Partition.ClaimedPartition,
				"path":    trust.Partition.InstallPath,
			},
		})
	}

	return out
}
