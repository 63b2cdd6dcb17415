// Package hypothesis turns correlated events into incidents with ranked
// causal hypotheses and a minimum safe action set. Pure over its inputs;
// incident ids are the only generated values.
package hypothesis

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/taxonomy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// Corroboration boost per recent related event for the same package,
// additive and capped.
const (
	corroborationBoost = 0.08
	corroborationCap   = 0.24
)

// Resolve builds an incident for one event, using recent events for the same
// package as corroboration. Every incident carries at least a monitor action.
func Resolve(event models.Event, recent []models.Event) models.Incident {
	profile := taxonomy.ProfileFor(event.Type)

	boost := corroboration(event, recent)
	supporting := evidenceIDs(event)

	hypotheses := make([]models.Hypothesis, 0, len(profile.Hypotheses))
	for i, tmpl := range profile.Hypotheses {
		confidence := tmpl.BaseConfidence
		// Corroboration strengthens the primary theory, not its competitors.
		if i == 0 {
			confidence = models.ClampConfidence(confidence + boost)
		}
		hypotheses = append(hypotheses, models.Hypothesis{
			Name:       tmpl.Name,
			Summary:    tmpl.Summary,
			Confidence: models.ClampConfidence(confidence),
			Supporting: supporting,
		})
	}

	return models.Incident{
		ID:         uuid.NewString(),
		Severity:   event.Severity,
		Title:      fmt.Sprintf("%s: %s", profile.Title, event.Package),
		Summary:    incidentSummary(event, len(recent)),
		Package:    event.Package,
		CreatedAt:  event.StartTS,
		Events:     []models.Event{event},
		Hypotheses: models.SortHypotheses(hypotheses),
		Actions:    draftActions(profile.Actions),
		Status:     models.StatusNew,
	}
}

// ResolveAll groups events by package and resolves each independently, using
// the package's other events as corroboration. Output order is deterministic:
// by package, then by event start time.
func ResolveAll(events []models.Event) []models.Incident {
	byPackage := make(map[string][]models.Event, len(events))
	for _, ev := range events {
		byPackage[ev.Package] = append(byPackage[ev.Package], ev)
	}

	packages := make([]string, 0, len(byPackage))
	for pkg := range byPackage {
		packages = append(packages, pkg)
	}
	sort.Strings(packages)

	out := make([]models.Incident, 0, len(events))
	for _, pkg := range packages {
		group := byPackage[pkg]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].StartTS.Before(group[j].StartTS)
		})
		for i, ev := range group {
			recent := make([]models.Event, 0, len(group)-1)
			recent = append(recent, group[:i]...)
			recent = append(recent, group[i+1:]...)
			out = append(out, Resolve(ev, recent))
		}
	}
	return out
}

// corroboration counts recent events for the same package within the
// corroboration window, excluding the event itself.
func corroboration(event models.Event, recent []models.Event) float64 {
	const window = 7 * 24 * time.Hour

	boost := 0.0
	for _, other := range recent {
		if other.ID == event.ID || other.Package != event.Package {
			continue
		}
		gap := event.StartTS.Sub(other.StartTS)
		if gap < 0 {
			gap = -gap
		}
		if gap > window {
			continue
		}
		boost += corroborationBoost
		if boost >= corroborationCap {
			return corroborationCap
		}
	}
	return boost
}

func evidenceIDs(event models.Event) []string {
	ids := make([]string, 0, len(event.Signals)+1)
	if event.ID != "" {
		ids = append(ids, event.ID)
	}
	for _, sig := range event.Signals {
		if sig.ID != "" {
			ids = append(ids, sig.ID)
		}
	}
	return ids
}

func incidentSummary(event models.Event, recentCount int) string {
	if recentCount > 0 {
		return fmt.Sprintf("%d signals observed for %s, corroborated by %d related events", len(event.Signals), event.Package, recentCount)
	}
	return fmt.Sprintf("%d signals observed for %s", len(event.Signals), event.Package)
}

// draftActions numbers the profile's actions and always appends monitoring as
// the guaranteed safe recommendation.
func draftActions(categories []models.ActionCategory) []models.RecommendedAction {
	out := make([]models.RecommendedAction, 0, len(categories)+1)
	step := 1
	hasMonitor := false
	for _, cat := range categories {
		if cat == models.ActionMonitor {
			hasMonitor = true
		}
		out = append(out, models.RecommendedAction{Step: step, Category: cat, Text: actionText(cat)})
		step++
	}
	if !hasMonitor {
		out = append(out, models.RecommendedAction{Step: step, Category: models.ActionMonitor, Text: actionText(models.ActionMonitor)})
	}
	return out
}

func actionText(cat models.ActionCategory) string {
	switch cat {
	case models.ActionMonitor:
		return "Keep an eye on this app's behavior"
	case models.ActionReviewPermissions:
		return "Review the permissions this app holds"
	case models.ActionDisableCapability:
		return "Disable the capability in system settings"
	case models.ActionUpdateApp:
		return "Update the app from a trusted source"
	case models.ActionUninstall:
		return "Uninstall the app"
	case models.ActionFactoryReset:
		return "Back up your data and factory reset the device"
	default:
		return ""
	}
}
