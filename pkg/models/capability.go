package models

// Capability is one dangerous capability an app can declare or be granted.
type Capability string

const (
	CapSMS                  Capability = "SMS"
	CapAccessibility        Capability = "ACCESSIBILITY_SERVICE"
	CapOverlay              Capability = "OVERLAY"
	CapDeviceAdmin          Capability = "DEVICE_ADMIN"
	CapVPN                  Capability = "VPN"
	CapPackageInstall       Capability = "PACKAGE_INSTALL"
	CapNotificationListener Capability = "NOTIFICATION_LISTENER"
	CapCallLog              Capability = "CALL_LOG"
	CapBackgroundLocation   Capability = "BACKGROUND_LOCATION"
)

// CapabilityCluster is a named bundle of capabilities representing one
// coherent risk surface.
type CapabilityCluster struct {
	Name         string       `json:"name"`
	Capabilities []Capability `json:"capabilities"`
	HighRisk     bool         `json:"high_risk"`
}

// EnablementState is the real user-enablement snapshot for capabilities that
// require explicit activation beyond declaration. A nil map means the state is
// unknown and activation falls back to declaration-only.
type EnablementState map[Capability]bool
