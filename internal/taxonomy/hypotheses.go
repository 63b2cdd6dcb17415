package taxonomy

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// HypothesisTemplate is one fixed causal theory attached to an event type.
type HypothesisTemplate struct {
	Name           models.HypothesisName
	Summary        string
	BaseConfidence float64
}

// EventProfile is the resolver-side projection of the taxonomy: the fixed
// hypothesis set, incident title, and draft actions for one event type.
type EventProfile struct {
	Title      string
	Hypotheses []HypothesisTemplate
	Actions    []models.ActionCategory
}

// AllEventTypes lists every event type the resolver understands.
var AllEventTypes = []models.EventType{
	models.EventSuspiciousUpdate,
	models.EventNewTrustedRootCert,
	models.EventCapabilityEscalation,
	models.EventSideloadInstall,
	models.EventPermissionSurge,
	models.EventStalkerwarePattern,
	models.EventCertificateDrift,
}

// Inherently ambiguous event types always carry at least two competing
// hypotheses so a single narrative can never be presented as fact.
var eventProfiles = map[models.EventType]EventProfile{
	models.EventSuspiciousUpdate: {
		Title: "Suspicious update",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisMaliciousUpdate, Summary: "the update introduced behavior the developer did not ship before", BaseConfidence: 0.45},
			{Name: models.HypothesisLegitimateUpdate, Summary: "the developer shipped a legitimate feature release", BaseConfidence: 0.40},
			{Name: models.HypothesisRepackagedApp, Summary: "the package was replaced by a repackaged build from another source", BaseConfidence: 0.25},
		},
		Actions: []models.ActionCategory{models.ActionReviewPermissions, models.ActionUpdateApp},
	},
	models.EventNewTrustedRootCert: {
		Title: "New trusted root certificate",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisTrafficInterception, Summary: "a root certificate was installed to intercept encrypted traffic", BaseConfidence: 0.50},
			{Name: models.HypothesisManagedEnrollment, Summary: "the device was enrolled into legitimate enterprise management", BaseConfidence: 0.45},
		},
		Actions: []models.ActionCategory{models.ActionReviewPermissions},
	},
	models.EventCapabilityEscalation: {
		Title: "Capability escalation",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisPrivilegeGrab, Summary: "the app acquired dangerous capabilities it never needed before", BaseConfidence: 0.50},
			{Name: models.HypothesisFeatureExpansion, Summary: "a new app feature legitimately requires the capability", BaseConfidence: 0.35},
		},
		Actions: []models.ActionCategory{models.ActionReviewPermissions, models.ActionDisableCapability},
	},
	models.EventSideloadInstall: {
		Title: "Sideloaded install",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisUntrustedSource, Summary: "the package arrived from an unverified distribution channel", BaseConfidence: 0.45},
			{Name: models.HypothesisIntentionalSideload, Summary: "the owner deliberately installed the package outside a store", BaseConfidence: 0.40},
		},
		Actions: []models.ActionCategory{models.ActionReviewPermissions},
	},
	models.EventPermissionSurge: {
		Title: "Permission surge",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisPermissionAbuse, Summary: "permissions were broadened beyond the app's advertised purpose", BaseConfidence: 0.45},
			{Name: models.HypothesisFeatureExpansion, Summary: "a legitimate feature rollout requested the new permissions", BaseConfidence: 0.35},
		},
		Actions: []models.ActionCategory{models.ActionReviewPermissions, models.ActionDisableCapability},
	},
	models.EventStalkerwarePattern: {
		Title: "Stalkerware pattern",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisConfirmedStalkerware, Summary: "the capability combination matches known covert monitoring tooling", BaseConfidence: 0.60},
			{Name: models.HypothesisCoveredMonitoring, Summary: "a monitoring app was installed with the owner's knowledge", BaseConfidence: 0.30},
		},
		Actions: []models.ActionCategory{models.ActionDisableCapability, models.ActionUninstall},
	},
	models.EventCertificateDrift: {
		Title: "Certificate drift",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisRepackagedApp, Summary: "the installed package no longer matches its recorded signer", BaseConfidence: 0.55},
			{Name: models.HypothesisKeyRotation, Summary: "the developer rotated signing keys through a verified lineage", BaseConfidence: 0.35},
		},
		Actions: []models.ActionCategory{models.ActionUninstall, models.ActionReviewPermissions},
	},
}

// ProfileFor returns the fixed event profile. Unknown event types fall back to
// a neutral profile that still yields two competing theories.
func ProfileFor(t models.EventType) EventProfile {
	if p, ok := eventProfiles[t]; ok {
		return p
	}
	return EventProfile{
		Title: "Unclassified activity",
		Hypotheses: []HypothesisTemplate{
			{Name: models.HypothesisPermissionAbuse, Summary: "the observed change may broaden what the app can do", BaseConfidence: 0.30},
			{Name: models.HypothesisFeatureExpansion, Summary: "the observed change may be routine app maintenance", BaseConfidence: 0.30},
		},
		Actions: nil,
	}
}
