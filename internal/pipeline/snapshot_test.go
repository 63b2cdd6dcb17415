package pipeline

import (
	"testing"
	"time"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/risk"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func TestDecodeSnapshot(t *testing.T) {
	payload := []byte(`{
		"snapshot_id": "snap-1",
		"package": "com.example.app",
		"collected_at": "2026-05-01T10:00:00Z",
		"is_system_app": false,
		"category": "MESSAGING",
		"trust": {"level": "LOW"},
		"findings": [{"type": "SIDELOADED_INSTALLER", "severity": "MEDIUM"}],
		"granted": ["SMS", "ACCESSIBILITY_SERVICE"]
	}`)

	snap, err := DecodeSnapshot(payload)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if snap.Package != "com.example.app" {
		t.Fatalf("package = %s", snap.Package)
	}
	if snap.Trust.Level != models.TrustLow {
		t.Fatalf("trust level = %s", snap.Trust.Level)
	}
	if len(snap.Findings) != 1 || snap.Findings[0].Type != models.FindingSideloadedInstaller {
		t.Fatalf("findings = %+v", snap.Findings)
	}
	if len(snap.Granted) != 2 {
		t.Fatalf("granted = %v", snap.Granted)
	}
}

func TestDecodeSnapshotRejectsGarbageAndMissingPackage(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("not json")); err == nil {
		t.Fatalf("expected error for invalid JSON")
	}
	if _, err := DecodeSnapshot([]byte(`{"snapshot_id":"x"}`)); err == nil {
		t.Fatalf("expected error for missing package")
	}
}

func TestDedupeKeyFallsBackToPackageAndTimestamp(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	withID := models.AppSnapshot{SnapshotID: "snap-1", Package: "a", CollectedAt: at}
	if withID.DedupeKey() != "snap-1" {
		t.Fatalf("key = %s", withID.DedupeKey())
	}
	withoutID := models.AppSnapshot{Package: "a", CollectedAt: at}
	other := models.AppSnapshot{Package: "b", CollectedAt: at}
	if withoutID.DedupeKey() == other.DedupeKey() {
		t.Fatalf("different packages share a dedupe key")
	}
}

func TestRiskInputCarriesOverrideAndSnapshotFields(t *testing.T) {
	snap := models.AppSnapshot{
		Package:      "com.example.app",
		IsSystemApp:  true,
		Category:     models.CategoryLauncher,
		InstallClass: models.InstallSystemPreinstalled,
		Granted:      []models.Capability{models.CapOverlay},
	}
	in := riskInput(snap, risk.ProfileUser)
	if in.Package != snap.Package || !in.IsSystemApp || in.Category != models.CategoryLauncher {
		t.Fatalf("input = %+v", in)
	}
	if in.ProfileOverride != risk.ProfileUser {
		t.Fatalf("override = %s", in.ProfileOverride)
	}
}
