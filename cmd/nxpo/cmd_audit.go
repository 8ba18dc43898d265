package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/audit"
	"github.com/nxos-tools/nxtool/pkg/cli"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "View audit logs",
	Long: `View audit logs of port-channel changes.

Every create and purge is logged with a timestamp, the user, the switch,
the exact command batch, and the success/failure status. Dry-run
previews are logged too, marked as such.

Examples:
  nxpo audit list
  nxpo audit list --switch sw1-a
  nxpo audit list --last 24h --failures`,
}

var (
	auditSwitch   string
	auditUserFlag string
	auditLast     string
	auditLimit    int
	auditFailures bool
)

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List audit events",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := audit.Filter{
			Switch:      auditSwitch,
			User:        auditUserFlag,
			Limit:       auditLimit,
			FailureOnly: auditFailures,
		}

		if auditLast != "" {
			duration, err := time.ParseDuration(auditLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", auditLast)
			}
			filter.StartTime = time.Now().Add(-duration)
		}

		events, err := audit.Query(filter)
		if err != nil {
			return fmt.Errorf("querying audit log: %w", err)
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(events)
		}

		if len(events) == 0 {
			fmt.Println("No audit events found")
			return nil
		}

		t := cli.NewTable("TIMESTAMP", "USER", "SWITCH", "OPERATION", "PO", "STATUS")
		for _, event := range events {
			status := cli.Green("ok")
			if !event.Success {
				status = cli.Red("failed")
			}
			if event.DryRun {
				status = cli.Yellow("dry-run")
			}

			po := ""
			if event.PortChannel > 0 {
				po = strconv.Itoa(event.PortChannel)
			}

			t.Row(
				event.Timestamp.Format("2006-01-02 15:04:05"),
				event.User,
				event.Switch,
				event.Operation,
				po,
				status,
			)
		}
		t.Flush()

		return nil
	},
}

func init() {
	auditListCmd.Flags().StringVar(&auditSwitch, "switch", "", "Filter by switch")
	auditListCmd.Flags().StringVar(&auditUserFlag, "user", "", "Filter by user")
	auditListCmd.Flags().StringVar(&auditLast, "last", "", "Only events from the last duration (e.g. 24h)")
	auditListCmd.Flags().IntVar(&auditLimit, "limit", 50, "Maximum events to show")
	auditListCmd.Flags().BoolVar(&auditFailures, "failures", false, "Only failed operations")

	auditCmd.AddCommand(auditListCmd)
}
