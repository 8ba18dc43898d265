// Package nxos implements port-channel discovery and provisioning for NX-OS
// switches: inventory parsing, aggregate-identifier allocation, configuration
// emission, and the show/purge/create workflows, plus the VLAN configuration
// reader. All device access goes through a transport.Executor.
package nxos

// PortChannelRecord is one parsed row of `show port-channel summary`.
// Records are immutable once parsed; ID is unique within a switch's snapshot.
type PortChannelRecord struct {
	Group    int      `json:"group"`
	ID       int      `json:"id"`
	Type     string   `json:"type"`
	Protocol string   `json:"protocol"`
	Members  []string `json:"members,omitempty"`
}

// Mode selects the switchport mode of the logical interface.
type Mode string

const (
	ModeTrunk  Mode = "trunk"
	ModeAccess Mode = "access"
)

// ProvisioningSpec describes one port-channel to be created on one switch.
// Constructed once per invocation, consumed once to emit commands.
type ProvisioningSpec struct {
	Description  string
	ID           int
	Members      []string
	NativeVLAN   int
	AllowedVLANs []int
	Mode         Mode
}
