// Package risk implements the pure risk evaluator: evidence plus trust plus
// capability state in, a deterministic verdict out. No I/O, no shared state;
// missing optional inputs degrade to safe defaults instead of erroring.
package risk

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Profile is the threshold regime applied to one finding set.
type Profile string

const (
	ProfileSystem Profile = "SYSTEM"
	ProfileUser   Profile = "USER"
)

// WeightedThreshold is the minimum hardness-weighted finding mass required for
// finding-driven escalation above SAFE. Combo and trust-anomaly rules bypass
// it; they are cluster/trust-driven, not finding-driven.
func (p Profile) WeightedThreshold() float64 {
	if p == ProfileSystem {
		return 5
	}
	return 1
}

// Input is everything the evaluator consumes for one app.
type Input struct {
	Package         string
	Trust           models.TrustEvidence
	Findings        []models.RawFinding
	IsSystemApp     bool
	Granted         []models.Capability
	Category        models.AppCategory
	Enablement      models.EnablementState // nil: declaration-only fallback
	InstallClass    models.InstallClass
	ProfileOverride Profile // empty: derived from InstallClass
}

// Evaluate computes the risk verdict for one app. Pure and deterministic:
// identical inputs always produce identical verdicts.
func Evaluate(in Input) models.Verdict {
	profile := profileFor(in.InstallClass, in.ProfileOverride)

	findings := append(append([]models.RawFinding(nil), in.Findings...), deriveTrustFindings(in.Trust)...)
	adjusted := adjustFindings(findings, in.Trust, in.Category, profile)

	active, unexpected := clusterState(in.Granted, in.Enablement, in.Category, in.Trust)

	outcome := evaluateRules(in, profile, adjusted, active, unexpected)

	verdict := models.Verdict{
		Package:            in.Package,
		Risk:               outcome.level,
		Findings:           adjusted,
		ActiveClusters:     active,
		UnexpectedClusters: unexpected,
		MatchedCombos:      outcome.combos,
		RiskScore:          riskScore(adjusted),
		ShowProminently:    outcome.level.Ordinal() >= models.RiskNeedsAttention.Ordinal() || !in.IsSystemApp,
	}
	verdict.TopReasons = topReasons(outcome.level, adjusted, outcome.reasons)
	return verdict
}

func profileFor(class models.InstallClass, override Profile) Profile {
	if override == ProfileSystem || override == ProfileUser {
		return override
	}
	switch class {
	case models.InstallSystemPreinstalled, models.InstallEnterpriseManaged:
		return ProfileSystem
	default:
		return ProfileUser
	}
}

// ruleOutcome merges the results of every rule that fired.
type ruleOutcome struct {
	level   models.RiskLevel
	reasons []models.Reason
	combos  []string
}

// evaluateRules runs the unordered rule set. The final level is the maximum
// produced by any firing rule; reasons from all firing rules are merged.
func evaluateRules(in Input, profile Profile, adjusted []models.AdjustedFinding, active, unexpected []string) ruleOutcome {
	out := ruleOutcome{level: models.RiskSafe}

	merge := func(level models.RiskLevel, reasons ...models.Reason) {
		out.level = out.level.Max(level)
		out.reasons = append(out.reasons, reasons...)
	}

	// Hard evidence at medium-or-higher severity is never negotiable.
	for _, af := range adjusted {
		if af.Suppressed || af.Hardness != models.HardnessHard {
			continue
		}
		if af.EffectiveSev.Ordinal() >= models.SeverityMedium.Ordinal() {
			merge(models.RiskCritical, findingReason(af))
		}
	}

	if in.Trust.Level == models.TrustAnomalous {
		merge(models.RiskCritical, models.Reason{
			Kind:     models.ReasonTrust,
			Severity: models.SeverityCritical,
			Message:  "trust evidence is anomalous",
		})
	}

	extra := hasExtraSignal(in, adjusted)

	for _, match := range matchCombos(in, active, unexpected, extra) {
		merge(match.level, models.Reason{
			Kind:     models.ReasonCombo,
			Combo:    match.name,
			Severity: comboSeverity(match.level),
			Message:  match.message,
		})
		out.combos = append(out.combos, match.name)
	}

	// Installer provenance anomaly together with any active high-risk cluster.
	if installerAnomalous(in.Trust, adjusted) && anyHighRisk(active) {
		merge(models.RiskNeedsAttention, models.Reason{
			Kind:     models.ReasonTrust,
			Severity: models.SeverityHigh,
			Message:  "installer provenance anomaly with an active high-risk capability",
		})
	}

	// A high-risk capability addition too mild for the hard rule still warrants
	// attention when trust is low.
	for _, af := range adjusted {
		if af.Suppressed || af.Finding.Type != models.FindingCapabilityAdded {
			continue
		}
		if af.EffectiveSev.Ordinal() < models.SeverityMedium.Ordinal() && in.Trust.Level == models.TrustLow {
			merge(models.RiskNeedsAttention, findingReason(af))
		}
	}

	// Low trust plus an unexpected high-risk cluster: the central
	// anti-alarm-fatigue gate. Without an extra signal this caps at INFO.
	if in.Trust.Level == models.TrustLow && anyHighRisk(unexpected) {
		level := models.RiskInfo
		if extra {
			level = models.RiskNeedsAttention
		}
		merge(level, models.Reason{
			Kind:     models.ReasonTrust,
			Severity: models.SeverityMedium,
			Message:  "unexpected high-risk capability on a low-trust app",
		})
	}

	// Finding-driven escalation to INFO, gated by the profile threshold.
	// Surface-increase-only soft findings never climb past INFO on their own.
	if weightedFindingMass(adjusted) >= profile.WeightedThreshold() {
		for _, af := range adjusted {
			if af.Suppressed {
				continue
			}
			merge(models.RiskInfo, findingReason(af))
			break
		}
	}

	return out
}

// hasExtraSignal is the exact combo-gating predicate: a sideloaded installer,
// a newly-observed app, any baseline-delta finding, or any other non-empty
// unsuppressed finding set.
func hasExtraSignal(in Input, adjusted []models.AdjustedFinding) bool {
	if in.Trust.Installer.Sideloaded {
		return true
	}
	for _, f := range in.Findings {
		if f.Type == models.FindingNewApp || f.Type == models.FindingBaselineDelta {
			return true
		}
	}
	for _, af := range adjusted {
		if !af.Suppressed {
			return true
		}
	}
	return false
}

func installerAnomalous(trust models.TrustEvidence, adjusted []models.AdjustedFinding) bool {
	if trust.Installer.Sideloaded {
		return true
	}
	for _, af := range adjusted {
		if !af.Suppressed && af.Finding.Type == models.FindingInstallerAnomaly {
			return true
		}
	}
	return false
}

func findingReason(af models.AdjustedFinding) models.Reason {
	return models.Reason{
		Kind:     models.ReasonFinding,
		Type:     af.Finding.Type,
		Severity: af.EffectiveSev,
		Hardness: af.Hardness,
		Message:  af.Finding.Message,
	}
}

func comboSeverity(level models.RiskLevel) models.Severity {
	if level == models.RiskCritical {
		return models.SeverityCritical
	}
	return models.SeverityHigh
}
