package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/nxos"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <port-channel-id>",
	Short: "Remove a port-channel and reset its former members",
	Long: `Remove a port-channel from each target switch and reset its former
member ports to defaults.

A switch where the port-channel does not exist is skipped with a
warning; the remaining switches are still purged. There is no rollback:
a failure on one switch leaves the other switches purged.

Examples:
  nxpo -m sw1-a -s sw1-b purge 12       # Preview
  nxpo -m sw1-a -s sw1-b purge 12 -x    # Execute`,
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

		ctx := context.Background()
		c := nxos.NewController(session, auditUser())
		plans := c.PurgePlan(ctx, id, targets)
		return runPlans(ctx, c, "purge", plans)
	},
}
