package risk

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/taxonomy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// adjustFindings applies hardness-aware trust and profile adjustment. HARD
// findings pass through untouched regardless of trust, category, or profile.
func adjustFindings(findings []models.RawFinding, trust models.TrustEvidence, category models.AppCategory, profile Profile) []models.AdjustedFinding {
	out := make([]models.AdjustedFinding, 0, len(findings))
	for _, f := range findings {
		out = append(out, adjustOne(f, trust, category, profile))
	}
	return out
}

func adjustOne(f models.RawFinding, trust models.TrustEvidence, category models.AppCategory, profile Profile) models.AdjustedFinding {
	hardness := taxonomy.HardnessOf(f.Type)
	af := models.AdjustedFinding{
		Finding:      f,
		Hardness:     hardness,
		EffectiveSev: f.Severity,
	}

	switch hardness {
	case models.HardnessHard:
		// Never downgraded, never suppressed.

	case models.HardnessSoft:
		if profile == ProfileSystem && taxonomy.IsSystemSuppressed(f.Type) {
			af.Suppressed = true
			break
		}
		if steps := trustDowngradeSteps(trust.Level); steps > 0 {
			lowered := f.Severity.StepDown(steps)
			if lowered != f.Severity {
				af.EffectiveSev = lowered
				af.Downgraded = true
			}
		}

	case models.HardnessWeak:
		if profile == ProfileSystem && taxonomy.IsSystemSuppressed(f.Type) {
			af.Suppressed = true
			break
		}
		if trust.Level == models.TrustHigh || taxonomy.IsWeakSuppressedCategory(category) {
			af.Suppressed = true
		}
	}

	af.ExplainPriority = explainPriority(af)
	return af
}

// trustDowngradeSteps: two steps at high trust, one at moderate, none below
// the low-trust floor.
func trustDowngradeSteps(level models.TrustLevel) int {
	switch level {
	case models.TrustHigh:
		return 2
	case models.TrustModerate:
		return 1
	default:
		return 0
	}
}

// explainPriority ranks HARD before SOFT before WEAK, then by effective
// severity. Used for reason ordering.
func explainPriority(af models.AdjustedFinding) int {
	return af.Hardness.Rank()*1000 + af.EffectiveSev.Ordinal()*10
}

// weightedFindingMass sums the hardness weights of unsuppressed findings for
// the profile threshold gate.
func weightedFindingMass(adjusted []models.AdjustedFinding) float64 {
	total := 0.0
	for _, af := range adjusted {
		if af.Suppressed {
			continue
		}
		switch af.Hardness {
		case models.HardnessHard:
			total += 5
		case models.HardnessSoft:
			total += 1
		case models.HardnessWeak:
			total += 0.25
		}
	}
	return total
}
