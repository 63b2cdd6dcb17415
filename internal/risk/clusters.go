package risk

import (
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/internal/taxonomy"
	"github.com/o0SilentStorm0o/CyberSentinel-sub001/pkg/models"
)

// clusterState determines which clusters are active and which of the active
// high-risk clusters are unexpected for the app's category.
//
// A cluster is active when any of its capabilities is granted. Capabilities
// that require explicit user enablement only activate when the enablement
// snapshot confirms them; a nil snapshot falls back to declaration-only.
func clusterState(granted []models.Capability, enablement models.EnablementState, category models.AppCategory, trust models.TrustEvidence) (active, unexpected []string) {
	grantedSet := make(map[models.Capability]bool, len(granted))
	for _, cap := range granted {
		grantedSet[cap] = true
	}

	for _, name := range taxonomy.ClusterNames {
		cluster, _ := taxonomy.Cluster(name)
		if !clusterActive(cluster, grantedSet, enablement) {
			continue
		}
		active = append(active, name)
		if cluster.HighRisk && !taxonomy.IsExpectedCluster(name, category, trust.Level) {
			unexpected = append(unexpected, name)
		}
	}
	return active, unexpected
}

func clusterActive(cluster models.CapabilityCluster, granted map[models.Capability]bool, enablement models.EnablementState) bool {
	for _, cap := range cluster.Capabilities {
		if !granted[cap] {
			continue
		}
		if taxonomy.RequiresEnablement(cap) && enablement != nil {
			// Declared but never enabled must not activate the cluster.
			if !enablement[cap] {
				continue
			}
		}
		return true
	}
	return false
}

func anyHighRisk(names []string) bool {
	for _, name := range names {
		if c, ok := taxonomy.Cluster(name); ok && c.HighRisk {
			return true
		}
	}
	return false
}
