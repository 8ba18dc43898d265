package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/nxos"
	"github.com/nxos-tools/nxtool/pkg/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List port-channels on the switch pair",
	Long: `List the port-channel inventory of each target switch.

Examples:
  nxpo -m sw1-a list
  nxpo -m sw1-a -s sw1-b list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, err := switchTargets()
		if err != nil {
			return err
		}

		session, cleanup, err := connect()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx := context.Background()
		inventories := make(map[string][]nxos.PortChannelRecord)
		for _, sw := range targets {
			records, err := session.PortChannels(ctx, sw)
			if err != nil {
				return err
			}
			if skipped := session.SkippedRows(sw); skipped > 0 {
				util.WithSwitch(sw).Warnf("skipped %d unparseable inventory rows", skipped)
			}
			inventories[sw] = records
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(inventories)
		}

		for _, sw := range targets {
			records := inventories[sw]
			fmt.Printf("%s:\n", cli.Bold(sw))
			if len(records) == 0 {
				fmt.Println("  No port-channels configured")
				fmt.Println()
				continue
			}

			t := cli.NewTable("  GROUP", "PORT-CHANNEL", "TYPE", "PROTOCOL", "MEMBERS")
			for _, rec := range records {
				members := strings.Join(rec.Members, ",")
				if members == "" {
					members = "--"
				}
				t.Row(
					fmt.Sprintf("  %d", rec.Group),
					fmt.Sprintf("Po%d", rec.ID),
					rec.Type,
					rec.Protocol,
					members,
				)
			}
			t.Flush()
			fmt.Println()
		}

		return nil
	},
}
