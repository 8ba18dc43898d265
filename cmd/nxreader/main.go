// Nxreader - NX-OS VLAN Inventory Reader
//
// Reads VLAN-level configuration (SVI addressing, VRF binding, HSRP roles,
// VXLAN VNIs) off NX-OS switch pairs and renders it as inline-YAML inventory
// items for downstream provisioning playbooks.
//
// Examples:
//
//	nxreader -m sw1-a -s sw1-b                 # HSRP pair inventory
//	nxreader -m leaf1 --vxlan                  # VXLAN fabric inventory
//	nxreader --targets-file targets.yaml       # Sweep a whole estate
//	nxreader -m sw1-a --vlans-macs             # Learned MACs per VLAN
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/nxos"
	"github.com/nxos-tools/nxtool/pkg/settings"
	"github.com/nxos-tools/nxtool/pkg/transport"
	"github.com/nxos-tools/nxtool/pkg/util"
	"github.com/nxos-tools/nxtool/pkg/version"
)

var (
	masterSwitch string
	slaveSwitch  string
	sshUser      string
	targetsFile  string
	vxlanMode    bool
	vlansMACs    bool
	verbose      bool
	jsonOutput   bool
	showVersion  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "nxreader",
	Short:         "NX-OS VLAN Inventory Reader",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `Nxreader walks the VLANs of an NX-OS switch pair and emits one
inventory item per VLAN, merging master and slave addressing. HSRP
groups drive the addressing where present; on platforms without HSRP
(or with --vxlan) the SVI and VNI configuration is used instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("nxreader %s\n", version.Info())
			return nil
		}
		return run(context.Background())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&masterSwitch, "master", "m", "", "Master switch (host or user@host)")
	rootCmd.Flags().StringVarP(&slaveSwitch, "slave", "s", "", "Slave switch (host or user@host)")
	rootCmd.Flags().StringVarP(&sshUser, "user", "u", "", "SSH user")
	rootCmd.Flags().StringVar(&targetsFile, "targets-file", "", "YAML file listing switch pairs to sweep")
	rootCmd.Flags().BoolVar(&vxlanMode, "vxlan", false, "Read VNI mappings instead of HSRP groups")
	rootCmd.Flags().BoolVar(&vlansMACs, "vlans-macs", false, "Show learned MAC counts per VLAN instead")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Print version and exit")
}

func run(ctx context.Context) error {
	if verbose {
		util.SetLogLevel("debug")
	} else {
		util.SetLogLevel("warn")
	}

	userSettings, err := settings.Load()
	if err != nil {
		util.Warnf("Could not load settings: %v", err)
		userSettings = &settings.Settings{}
	}
	if sshUser == "" {
		sshUser = userSettings.DefaultUser
	}

	targets, sweep, err := resolveTargets(userSettings)
	if err != nil {
		return err
	}

	pass, err := sshPassword()
	if err != nil {
		return err
	}
	exec := transport.NewSSHExecutor(sshUser, pass)
	defer exec.Close()
	session := nxos.NewSession(exec)

	if vlansMACs {
		return printMACCounts(ctx, session, targets)
	}

	var entries []nxos.VLANEntry
	seen := make(map[string]bool)
	for _, target := range targets {
		master := nxos.NewReader(session, target.Master)
		var slave *nxos.Reader
		if target.Slave != "" {
			slave = nxos.NewReader(session, target.Slave)
		}

		gathered, err := nxos.GatherEntries(ctx, master, slave, vxlanMode)
		if err != nil {
			if sweep {
				// One unreachable pair must not abort the whole sweep.
				util.WithSwitch(target.Master).Warnf("skipping pair: %v", err)
				continue
			}
			return err
		}

		// First pair to report a VLAN wins across the sweep.
		for _, entry := range gathered {
			if seen[entry.VLANID] {
				continue
			}
			seen[entry.VLANID] = true
			entries = append(entries, entry)
		}
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(entries)
	}
	for _, entry := range entries {
		fmt.Println(entry.InventoryLine())
	}
	return nil
}

// resolveTargets builds the list of switch pairs to read. sweep is true when
// the list came from a targets file, in which case unreachable pairs are
// skipped instead of aborting.
func resolveTargets(userSettings *settings.Settings) ([]nxos.Target, bool, error) {
	if targetsFile != "" {
		targets, err := nxos.LoadTargets(targetsFile)
		return targets, true, err
	}

	if masterSwitch == "" {
		masterSwitch = userSettings.DefaultMaster
	}
	if slaveSwitch == "" {
		slaveSwitch = userSettings.DefaultSlave
	}
	if masterSwitch == "" {
		return nil, false, fmt.Errorf("master switch required: use -m <switch> or --targets-file")
	}
	return []nxos.Target{{Master: masterSwitch, Slave: slaveSwitch}}, false, nil
}

func printMACCounts(ctx context.Context, session *nxos.Session, targets []nxos.Target) error {
	for _, target := range targets {
		r := nxos.NewReader(session, target.Master)

		vlans, err := r.VLANs(ctx)
		if err != nil {
			return err
		}
		counts, err := r.MACCounts(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := json.NewEncoder(os.Stdout).Encode(counts); err != nil {
				return err
			}
			continue
		}

		fmt.Printf("%s:\n", cli.Bold(target.Master))
		t := cli.NewTable("  VLAN", "NAME", "MACS")
		for _, vlan := range vlans {
			t.Row("  "+vlan.ID, vlan.Name, strconv.Itoa(counts[vlan.ID]))
		}
		t.Flush()
		fmt.Println()
	}
	return nil
}

func sshPassword() (string, error) {
	if pass := os.Getenv("NXTOOL_SSH_PASS"); pass != "" {
		return pass, nil
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", fmt.Errorf("no password: set NXTOOL_SSH_PASS or run interactively")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	pass, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pass), nil
}
