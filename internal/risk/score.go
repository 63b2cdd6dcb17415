package risk

import (
	"sort"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// riskScore sums severity-weighted contributions from unsuppressed findings,
// clamped to [0,100].
func riskScore(adjusted []models.AdjustedFinding) int {
	total := 0
	for _, af := range adjusted {
		if af.Suppressed {
			continue
		}
		total += af.EffectiveSev.Weight()
	}
	if total > 100 {
		total = 100
	}
	return total
}

// topReasons ranks finding and combo reasons by explain priority and
// truncates by verdict level: 3 for CRITICAL, 2 for NEEDS_ATTENTION,
// 0 otherwise.
func topReasons(level models.RiskLevel, adjusted []models.AdjustedFinding, ruleReasons []models.Reason) []models.Reason {
	limit := 0
	switch level {
	case models.RiskCritical:
		limit = 3
	case models.RiskNeedsAttention:
		limit = 2
	}
	if limit == 0 {
		return nil
	}

	type ranked struct {
		reason   models.Reason
		priority int
	}

	candidates := make([]ranked, 0, len(adjusted)+len(ruleReasons))
	seen := make(map[string]bool, len(adjusted))
	for _, af := range adjusted {
		if af.Suppressed {
			continue
		}
		key := models.ReasonFinding + "|" + string(af.Finding.Type)
		if seen[key] {
			continue
		}
		seen[key] = true
		candidates = append(candidates, ranked{reason: findingReason(af), priority: af.ExplainPriority})
	}
	for _, r := range ruleReasons {
		if r.Kind != models.ReasonCombo {
			continue
		}
		key := r.Kind + "|" + r.Combo
		if seen[key] {
			continue
		}
		seen[key] = true
		// Combos rank just below a finding of equal severity.
		candidates = append(candidates, ranked{reason: r, priority: models.HardnessSoft.Rank()*1000 + r.Severity.Ordinal()*10 - 1})
	}

	// Stable sort keeps evaluator table order for equal-rank reasons.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]models.Reason, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.reason)
	}
	return out
}
