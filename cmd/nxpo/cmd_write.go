package main

import (
	"context"
	"fmt"

	"github.com/nxos-tools/nxtool/pkg/audit"
	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/nxos"
	"github.com/nxos-tools/nxtool/pkg/util"
)

// runPlans executes the plans with -x, otherwise prints them as a dry-run
// preview. Previews are audited too, marked as dry-run.
func runPlans(ctx context.Context, c *nxos.Controller, operation string, plans []nxos.Plan) error {
	if executeMode {
		return printReports(c.Execute(ctx, operation, plans))
	}

	fmt.Printf("%s the following commands would be sent (use -x to execute):\n\n", cli.Yellow("Dry-run:"))
	failed := 0
	for _, plan := range plans {
		fmt.Printf("%s:\n", cli.Bold(plan.Switch))
		if plan.Err != nil {
			fmt.Printf("  %s %v\n\n", cli.Red("error:"), plan.Err)
			failed++
			continue
		}
		for _, command := range plan.Commands {
			fmt.Println("  " + command)
		}
		fmt.Println()

		event := audit.NewEvent(c.User, plan.Switch, operation).
			WithPortChannel(plan.ID).
			WithCommands(plan.Commands).
			WithDryRun(true).
			WithSuccess()
		if err := audit.Log(event); err != nil {
			util.Warnf("audit: %v", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d switches could not be planned", failed, len(plans))
	}
	return nil
}
