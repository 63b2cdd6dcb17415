package risk

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/taxonomy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// comboRule names one co-occurrence of clusters with trust/installer
// conditions. The table is compile-time data, not user-extensible.
type comboRule struct {
	name            string
	clusters        []string
	requireSideload bool
	requireLowTrust bool
	// respectExpected combos stand down when every required cluster is
	// expected for the app's category; others bypass the table.
	respectExpected bool
	level           models.RiskLevel
	message         string
}

var comboRules = []comboRule{
	{
		name:            "accessibility-overlay-sideload",
		clusters:        []string{taxonomy.ClusterAccessibility, taxonomy.ClusterOverlay},
		requireSideload: true,
		respectExpected: true,
		level:           models.RiskCritical,
		message:         "sideloaded app holds accessibility and overlay capabilities",
	},
	{
		name:            "accessibility-notification-sideload",
		clusters:        []string{taxonomy.ClusterAccessibility, taxonomy.ClusterNotificationListener},
		requireSideload: true,
		respectExpected: true,
		level:           models.RiskCritical,
		message:         "sideloaded app can read notifications and drive the screen",
	},
	{
		name:            "accessibility-notification",
		clusters:        []string{taxonomy.ClusterAccessibility, taxonomy.ClusterNotificationListener},
		respectExpected: true,
		level:           models.RiskNeedsAttention,
		message:         "app can read notifications and drive the screen",
	},
	{
		name:            "sms-calllog-lowtrust",
		clusters:        []string{taxonomy.ClusterSMS, taxonomy.ClusterCallLog},
		requireLowTrust: true,
		respectExpected: true,
		level:           models.RiskNeedsAttention,
		message:         "low-trust app can read messages and call history",
	},
}

type comboMatch struct {
	name    string
	level   models.RiskLevel
	message string
}

// matchCombos evaluates the combo table against the active cluster set.
// Matches whose only escalation basis is low trust plus unexpected clusters
// are capped at INFO unless an extra signal is present; a required sideload is
// itself an extra signal.
func matchCombos(in Input, active, unexpected []string, extra bool) []comboMatch {
	activeSet := make(map[string]bool, len(active))
	for _, name := range active {
		activeSet[name] = true
	}
	unexpectedSet := make(map[string]bool, len(unexpected))
	for _, name := range unexpected {
		unexpectedSet[name] = true
	}

	var matches []comboMatch
	for _, rule := range comboRules {
		if !allActive(rule.clusters, activeSet) {
			continue
		}
		if rule.requireSideload && !in.Trust.Installer.Sideloaded {
			continue
		}
		if rule.requireLowTrust && in.Trust.Level != models.TrustLow {
			continue
		}
		if rule.respectExpected && !anyUnexpected(rule.clusters, unexpectedSet) {
			continue
		}

		level := rule.level
		if !rule.requireSideload && in.Trust.Level == models.TrustLow && !extra {
			if level.Ordinal() > models.RiskInfo.Ordinal() {
				level = models.RiskInfo
			}
		}
		matches = append(matches, comboMatch{name: rule.name, level: level, message: rule.message})
	}
	return matches
}

func allActive(required []string, active map[string]bool) bool {
	for _, name := range required {
		if !active[name] {
			return false
		}
	}
	return true
}

func anyUnexpected(required []string, unexpected map[string]bool) bool {
	for _, name := range required {
		if unexpected[name] {
			return true
		}
	}
	return false
}
