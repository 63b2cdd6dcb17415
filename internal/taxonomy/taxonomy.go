// Package taxonomy owns the compile-time-fixed evidence tables: the canonical
// finding-type enumeration with its hardness projection, the capability
// cluster tables, the expected-capability table, and the hypothesis-template
// projection used by the resolver. Nothing here is user-extensible.
package taxonomy

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// AllFindingTypes lists every member of the closed finding enumeration.
// Exhaustiveness tests iterate this slice against every projection.
var AllFindingTypes = []models.FindingType{
	models.FindingCertBaselineDrift,
	models.FindingCertMismatch,
	models.FindingPartitionMismatch,
	models.FindingCapabilityAdded,
	models.FindingKnownStalkerware,
	models.FindingStaleTargetVersion,
	models.FindingOverbroadPermissions,
	models.FindingExportedComponents,
	models.FindingHighRiskCapability,
	models.FindingInstallerAnomaly,
	models.FindingNonCanonicalSigner,
	models.FindingSideloadedInstaller,
	models.FindingBaselineDelta,
	models.FindingNewApp,
	models.FindingUnusualInstallTime,
	models.FindingLowPrevalence,
}

var findingHardness = map[models.FindingType]models.Hardness{
	models.FindingCertBaselineDrift:    models.HardnessHard,
	models.FindingCertMismatch:         models.HardnessHard,
	models.FindingPartitionMismatch:    models.HardnessHard,
	models.FindingCapabilityAdded:      models.HardnessHard,
	models.FindingKnownStalkerware:     models.HardnessHard,
	models.FindingStaleTargetVersion:   models.HardnessSoft,
	models.FindingOverbroadPermissions: models.HardnessSoft,
	models.FindingExportedComponents:   models.HardnessSoft,
	models.FindingHighRiskCapability:   models.HardnessSoft,
	models.FindingInstallerAnomaly:     models.HardnessSoft,
	models.FindingNonCanonicalSigner:   models.HardnessSoft,
	models.FindingSideloadedInstaller:  models.HardnessSoft,
	models.FindingBaselineDelta:        models.HardnessSoft,
	models.FindingNewApp:               models.HardnessWeak,
	models.FindingUnusualInstallTime:   models.HardnessWeak,
	models.FindingLowPrevalence:        models.HardnessWeak,
}

// surfaceIncrease marks SOFT hygiene findings that only widen attack surface.
var surfaceIncrease = map[models.FindingType]bool{
	models.FindingStaleTargetVersion:   true,
	models.FindingOverbroadPermissions: true,
	models.FindingExportedComponents:   true,
}

// systemSuppress is the SYSTEM-profile allow-list. By construction it contains
// only SOFT/WEAK types; a test asserts no HARD type ever lands here.
var systemSuppress = map[models.FindingType]bool{
	models.FindingStaleTargetVersion:   true,
	models.FindingOverbroadPermissions: true,
	models.FindingExportedComponents:   true,
	models.FindingHighRiskCapability:   true,
	models.FindingInstallerAnomaly:     true,
	models.FindingNonCanonicalSigner:   true,
}

// HardnessOf returns the hardness of a finding type. Unknown types classify
// as WEAK_SIGNAL so a stale producer can never smuggle in hard evidence.
func HardnessOf(t models.FindingType) models.Hardness {
	if h, ok := findingHardness[t]; ok {
		return h
	}
	return models.HardnessWeak
}

// IsSurfaceIncrease reports whether the type is surface-increase-only.
func IsSurfaceIncrease(t models.FindingType) bool {
	return surfaceIncrease[t]
}

// IsSystemSuppressed reports whether the SYSTEM profile suppresses the type.
func IsSystemSuppressed(t models.FindingType) bool {
	return systemSuppress[t]
}

// Cluster names.
const (
	ClusterSMS                  = "sms"
	ClusterAccessibility        = "accessibility"
	ClusterOverlay              = "overlay"
	ClusterDeviceAdmin          = "device-admin"
	ClusterVPN                  = "vpn"
	ClusterPackageInstall       = "package-install"
	ClusterNotificationListener = "notification-listener"
	ClusterCallLog              = "call-log"
	ClusterBackgroundLocation   = "background-location"
)

var clusters = map[string]models.CapabilityCluster{
	ClusterSMS:                  {Name: ClusterSMS, Capabilities: []models.Capability{models.CapSMS}, HighRisk: true},
	ClusterAccessibility:        {Name: ClusterAccessibility, Capabilities: []models.Capability{models.CapAccessibility}, HighRisk: true},
	ClusterOverlay:              {Name: ClusterOverlay, Capabilities: []models.Capability{models.CapOverlay}, HighRisk: true},
	ClusterDeviceAdmin:          {Name: ClusterDeviceAdmin, Capabilities: []models.Capability{models.CapDeviceAdmin}, HighRisk: true},
	ClusterVPN:                  {Name: ClusterVPN, Capabilities: []models.Capability{models.CapVPN}, HighRisk: false},
	ClusterPackageInstall:       {Name: ClusterPackageInstall, Capabilities: []models.Capability{models.CapPackageInstall}, HighRisk: true},
	ClusterNotificationListener: {Name: ClusterNotificationListener, Capabilities: []models.Capability{models.CapNotificationListener}, HighRisk: true},
	ClusterCallLog:              {Name: ClusterCallLog, Capabilities: []models.Capability{models.CapCallLog}, HighRisk: true},
	ClusterBackgroundLocation:   {Name: ClusterBackgroundLocation, Capabilities: []models.Capability{models.CapBackgroundLocation}, HighRisk: true},
}

// ClusterNames lists every cluster in deterministic declaration order.
var ClusterNames = []string{
	ClusterSMS,
	ClusterAccessibility,
	ClusterOverlay,
	ClusterDeviceAdmin,
	ClusterVPN,
	ClusterPackageInstall,
	ClusterNotificationListener,
	ClusterCallLog,
	ClusterBackgroundLocation,
}

// AllCapabilities lists every capability in the enumeration.
var AllCapabilities = []models.Capability{
	models.CapSMS,
	models.CapAccessibility,
	models.CapOverlay,
	models.CapDeviceAdmin,
	models.CapVPN,
	models.CapPackageInstall,
	models.CapNotificationListener,
	models.CapCallLog,
	models.CapBackgroundLocation,
}

// requiresEnablement marks capabilities that only count as active once the
// user has explicitly enabled them, not merely declared/granted.
var requiresEnablement = map[models.Capability]bool{
	models.CapAccessibility:        true,
	models.CapNotificationListener: true,
	models.CapDeviceAdmin:          true,
	models.CapOverlay:              true,
}

// Cluster returns the cluster definition by name.
func Cluster(name string) (models.CapabilityCluster, bool) {
	c, ok := clusters[name]
	return c, ok
}

// RequiresEnablement reports whether the capability needs explicit user
// enablement before it activates its cluster.
func RequiresEnablement(cap models.Capability) bool {
	return requiresEnablement[cap]
}

// expectedClusters maps cluster → categories where that capability surface is
// part of the app's advertised job.
var expectedClusters = map[string]map[models.AppCategory]bool{
	ClusterSMS:                  {models.CategoryMessaging: true, models.CategoryDialer: true},
	ClusterCallLog:              {models.CategoryMessaging: true, models.CategoryDialer: true},
	ClusterAccessibility:        {models.CategoryAccessibilityTool: true},
	ClusterOverlay:              {models.CategoryAccessibilityTool: true, models.CategoryLauncher: true},
	ClusterVPN:                  {models.CategoryVPNClient: true, models.CategorySecurity: true},
	ClusterPackageInstall:       {models.CategoryAppStore: true},
	ClusterDeviceAdmin:          {models.CategoryDeviceManagement: true, models.CategorySecurity: true},
	ClusterNotificationListener: {models.CategoryAutomation: true, models.CategoryFitness: true},
	ClusterBackgroundLocation:   {models.CategoryNavigation: true, models.CategoryFitness: true},
}

// IsExpectedCluster reports whether an active cluster is expected for the
// category. The accessibility-tool category only vouches for a caller with
// moderate-or-better trust.
func IsExpectedCluster(cluster string, category models.AppCategory, trust models.TrustLevel) bool {
	cats, ok := expectedClusters[cluster]
	if !ok || !cats[category] {
		return false
	}
	if category == models.CategoryAccessibilityTool && !trust.AtLeastModerate() {
		return false
	}
	return true
}

// weakSuppressCategories whitelists categories whose churn makes weak signals
// meaningless noise.
var weakSuppressCategories = map[models.AppCategory]bool{
	models.CategoryLauncher: true,
	models.CategorySecurity: true,
}

// IsWeakSuppressedCategory reports whether WEAK_SIGNAL findings are dropped
// for the category.
func IsWeakSuppressedCategory(cat models.AppCategory) bool {
	return weakSuppressCategories[cat]
}
