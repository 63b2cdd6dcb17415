package taxonomy

import (
	"testing"

	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

func TestEveryFindingTypeHasAHardnessEntry(t *testing.T) {
	for _, ft := range AllFindingTypes {
		if _, ok := findingHardness[ft]; !ok {
			t.Fatalf("finding type %s has no hardness entry", ft)
		}
	}
	if len(findingHardness) != len(AllFindingTypes) {
		t.Fatalf("hardness table has %d entries, enumeration has %d", len(findingHardness), len(AllFindingTypes))
	}
}

func TestSystemSuppressListNeverContainsHardTypes(t *testing.T) {
	for ft := range systemSuppress {
		if HardnessOf(ft) == models.HardnessHard {
			t.Fatalf("SYSTEM allow-list contains HARD type %s", ft)
		}
	}
}

func TestSurfaceIncreaseTypesAreSoft(t *testing.T) {
	for ft := range surfaceIncrease {
		if HardnessOf(ft) != models.HardnessSoft {
			t.Fatalf("surface-increase type %s is not SOFT", ft)
		}
	}
}

func TestUnknownFindingTypeClassifiesAsWeak(t *testing.T) {
	if got := HardnessOf(models.FindingType("SOMETHING_NEW")); got != models.HardnessWeak {
		t.Fatalf("unknown type classified as %s, want WEAK_SIGNAL", got)
	}
}

func TestEveryCapabilityBelongsToExactlyOneCluster(t *testing.T) {
	owners := make(map[models.Capability]string)
	for _, name := range ClusterNames {
		c, ok := Cluster(name)
		if !ok {
			t.Fatalf("cluster %s missing from table", name)
		}
		for _, cap := range c.Capabilities {
			if prev, dup := owners[cap]; dup {
				t.Fatalf("capability %s is in clusters %s and %s", cap, prev, name)
			}
			owners[cap] = name
		}
	}
	for _, cap := range AllCapabilities {
		if _, ok := owners[cap]; !ok {
			t.Fatalf("capability %s belongs to no cluster", cap)
		}
	}
}

func TestEveryClusterHasAnExpectedCategoryEntry(t *testing.T) {
	for _, name := range ClusterNames {
		if _, ok := expectedClusters[name]; !ok {
			t.Fatalf("cluster %s has no expected-capability entry", name)
		}
	}
}

func TestAccessibilityToolCategoryRequiresModerateTrust(t *testing.T) {
	if IsExpectedCluster(ClusterAccessibility, models.CategoryAccessibilityTool, models.TrustLow) {
		t.Fatalf("low-trust accessibility tool must not be vouched for")
	}
	if !IsExpectedCluster(ClusterAccessibility, models.CategoryAccessibilityTool, models.TrustModerate) {
		t.Fatalf("moderate-trust accessibility tool should be expected")
	}
}

func TestEveryEventTypeHasAProfileWithCompetingHypotheses(t *testing.T) {
	for _, et := range AllEventTypes {
		p, ok := eventProfiles[et]
		if !ok {
			t.Fatalf("event type %s has no profile", et)
		}
		if len(p.Hypotheses) < 2 {
			t.Fatalf("event type %s has %d hypotheses, want at least 2 competing theories", et, len(p.Hypotheses))
		}
		for _, h := range p.Hypotheses {
			if h.BaseConfidence <= 0 || h.BaseConfidence > 1 {
				t.Fatalf("event type %s hypothesis %s has base confidence %f outside (0,1]", et, h.Name, h.BaseConfidence)
			}
		}
	}
}

func TestUnknownEventTypeFallsBackToNeutralProfile(t *testing.T) {
	p := ProfileFor(models.EventType("NEVER_SEEN"))
	if len(p.Hypotheses) < 2 {
		t.Fatalf("fallback profile must keep competing hypotheses, got %d", len(p.Hypotheses))
	}
}
