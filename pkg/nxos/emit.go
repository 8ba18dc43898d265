package nxos

import (
	"fmt"
	"strings"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// EmitCreate produces the ordered configuration sequence that creates a
// port-channel. The order is device-mandated: members must join the
// channel-group before the logical interface is fully configured. Do not
// reorder.
//
// Access mode is declared but not implemented end to end; it is rejected
// here so no partial access-mode config ever reaches a device.
func EmitCreate(spec ProvisioningSpec) ([]string, error) {
	if spec.Mode == ModeAccess {
		return nil, fmt.Errorf("access mode: %w", util.ErrUnsupportedMode)
	}

	cmds := []string{"configure terminal"}

	for _, member := range spec.Members {
		cmds = append(cmds,
			"interface "+member,
			"description "+spec.Description,
			"switchport",
			fmt.Sprintf("channel-group %d mode passive", spec.ID),
			"no shutdown",
		)
	}

	cmds = append(cmds,
		fmt.Sprintf("interface port-channel%d", spec.ID),
		"description "+spec.Description,
		"switchport",
		"switchport mode trunk",
		fmt.Sprintf("switchport trunk native vlan %d", spec.NativeVLAN),
	)

	// The allowed list is only restricted when the caller supplied one; the
	// native VLAN is always part of the union.
	if len(spec.AllowedVLANs) > 0 {
		allowed := append([]int{spec.NativeVLAN}, spec.AllowedVLANs...)
		cmds = append(cmds, "switchport trunk allowed vlan "+util.CompactRange(allowed))
	}

	cmds = append(cmds,
		"no lacp suspend-individual",
		"spanning-tree port type edge trunk",
		fmt.Sprintf("vpc %d", spec.ID),
		"no shutdown",
		"end",
	)
	return cmds, nil
}

// EmitPurge produces the sequence that removes a port-channel and resets its
// former member interfaces to defaults. With no known members the reset line
// carries the "--" placeholder the device treats as a no-op target.
func EmitPurge(id int, members []string) []string {
	target := "--"
	if len(members) > 0 {
		target = strings.Join(members, ",")
	}
	return []string{
		"configure terminal",
		fmt.Sprintf("no interface port-channel%d", id),
		"default interface " + target,
		"end",
	}
}
