package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/nxos"
)

var showCmd = &cobra.Command{
	Use:   "show <port-channel-id>",
	Short: "Show the running config of a port-channel and its members",
	Long: `Show the running config of the logical interface and every member
port on each target switch. A switch where the port-channel does not
exist is reported and the remaining switches are still shown.

Examples:
  nxpo -m sw1-a -s sw1-b show 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid port-channel id %q", args[0])
		}

		targets, err := switchTargets()
		if err != nil {
			return err
		}

		session, cleanup, err := connect()
		if err != nil {
			return err
		}
		defer cleanup()

		c := nxos.NewController(session, auditUser())
		reports := c.Show(context.Background(), id, targets)

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(reports)
		}
		return printReports(reports)
	},
}

// printReports renders per-switch outcomes and returns an error when any
// switch failed, so partial success still exits non-zero.
func printReports(reports []nxos.Report) error {
	failed := 0
	for _, r := range reports {
		fmt.Printf("%s:\n", cli.Bold(r.Switch))
		if r.Err != nil {
			fmt.Printf("  %s %v\n\n", cli.Red("error:"), r.Err)
			failed++
			continue
		}
		if r.Output != "" {
			fmt.Print(cli.Indent(r.Output, "  "))
		}
		fmt.Println()
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d switches failed", failed, len(reports))
	}
	return nil
}
