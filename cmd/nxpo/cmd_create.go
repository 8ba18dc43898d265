package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/nxos"
	"github.com/nxos-tools/nxtool/pkg/util"
)

var (
	createDesc         string
	createPorts        string
	createSlavePorts   string
	createNativeVLAN   int
	createAllowedVLANs string
	createMode         string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a trunk port-channel across the switch pair",
	Long: `Create a vPC port-channel on the target switches. The identifier is
allocated automatically: the lowest number free on every target switch.

Member ports are bundled in LACP passive mode; the logical interface is
configured as a trunk with the given native VLAN, and the vPC number
equals the port-channel number.

Examples:
  nxpo -m sw1-a -s sw1-b create --desc uplink-rack7 \
      --ports Eth1/1,Eth1/2 --slave-ports Eth1/1,Eth1/2 \
      --native-vlan 10 --allowed-vlans 20,30
  nxpo -m sw1-a create --desc lab --ports Eth1/5 \
      --native-vlan 100 --allowed-vlans 100-110 -x`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := switchTargets()
		if err != nil {
			return err
		}
		masterPorts := util.SplitCommaSeparated(createPorts)
		slavePorts := util.SplitCommaSeparated(createSlavePorts)
		if len(slavePorts) > 0 && slaveSwitch == "" {
			return fmt.Errorf("--slave-ports requires a slave switch (-s)")
		}

		allowed, err := util.ExpandVLANRange(createAllowedVLANs)
		if err != nil {
			return fmt.Errorf("invalid --allowed-vlans: %w", err)
		}

		req := nxos.CreateRequest{
			Description:  createDesc,
			NativeVLAN:   createNativeVLAN,
			AllowedVLANs: allowed,
			Mode:         nxos.Mode(createMode),
			Ports:        []nxos.SwitchPorts{{Switch: targets[0], Ports: masterPorts}},
		}
		if slaveSwitch != "" {
			if len(slavePorts) == 0 {
				// vPC pairs are cabled symmetrically by convention.
				slavePorts = masterPorts
			}
			req.Ports = append(req.Ports, nxos.SwitchPorts{Switch: slaveSwitch, Ports: slavePorts})
		}

		session, cleanup, err := connect()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := context.Background()
		c := nxos.NewController(session, auditUser())
		id, plans, err := c.CreatePlan(ctx, req)
		if err != nil {
			return err
		}

		fmt.Printf("Allocated port-channel identifier: %s\n\n", cli.Green(fmt.Sprintf("%d", id)))
		return runPlans(ctx, c, "create", plans)
	},
}

func init() {
	createCmd.Flags().StringVar(&createDesc, "desc", "", "Port-channel description (required)")
	createCmd.Flags().StringVar(&createPorts, "ports", "", "Member ports on the master switch (e.g. Eth1/1,Eth1/2)")
	createCmd.Flags().StringVar(&createSlavePorts, "slave-ports", "", "Member ports on the slave switch (defaults to --ports)")
	createCmd.Flags().IntVar(&createNativeVLAN, "native-vlan", 0, "Native VLAN for the trunk (required)")
	createCmd.Flags().StringVar(&createAllowedVLANs, "allowed-vlans", "", "Allowed VLANs, range notation (e.g. 20,30 or 100-110)")
	createCmd.Flags().StringVar(&createMode, "mode", "trunk", "Switchport mode (only trunk is supported)")
}
