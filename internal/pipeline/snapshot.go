package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/risk"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// DecodeSnapshot parses one raw queue payload into an app snapshot.
func DecodeSnapshot(payload []byte) (models.AppSnapshot, error) {
	var snap models.AppSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return models.AppSnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Package == "" {
		return models.AppSnapshot{}, fmt.Errorf("snapshot has no package")
	}
	return snap, nil
}

// riskInput maps a snapshot onto the evaluator's input.
func riskInput(snap models.AppSnapshot, override risk.Profile) risk.Input {
	return risk.Input{
		Package:         snap.Package,
		Trust:           snap.Trust,
		Findings:        snap.Findings,
		IsSystemApp:     snap.IsSystemApp,
		Granted:         snap.Granted,
		Category:        snap.Category,
		Enablement:      snap.Enablement,
		InstallClass:    snap.InstallClass,
		ProfileOverride: override,
	}
}
