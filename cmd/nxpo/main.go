// Nxpo - NX-OS Port-Channel Tool
//
// A CLI tool for managing vPC port-channels on Cisco NX-OS switch pairs:
//   - Automatic identifier allocation across the pair
//   - Dry-run by default (preview commands, require -x to execute)
//   - Audit logging of all changes
//
// Context flags select the switch pair; commands operate on it:
//
//	nxpo -m <master> [-s <slave>] <verb> [args] [-x]
//
// Examples:
//
//	nxpo -m sw1-a list                                    # Port-channel inventory
//	nxpo -m sw1-a -s sw1-b show 12                        # Running config of Po12
//	nxpo -m sw1-a -s sw1-b create --desc uplink-rack7 \
//	    --ports Eth1/1,Eth1/2 --slave-ports Eth1/1,Eth1/2 \
//	    --native-vlan 10 --allowed-vlans 20,30             # Preview creation
//	nxpo -m sw1-a -s sw1-b purge 12 -x                    # Remove Po12 for real
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nxos-tools/nxtool/pkg/audit"
	"github.com/nxos-tools/nxtool/pkg/nxos"
	"github.com/nxos-tools/nxtool/pkg/settings"
	"github.com/nxos-tools/nxtool/pkg/transport"
	"github.com/nxos-tools/nxtool/pkg/util"
	"github.com/nxos-tools/nxtool/pkg/version"
)

var (
	// Context flags (switch pair selectors)
	masterSwitch string // -m, --master
	slaveSwitch  string // -s, --slave

	// Global option flags
	sshUser     string
	verbose     bool
	jsonOutput  bool
	executeMode bool

	// Global state
	userSettings *settings.Settings
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "nxpo",
	Short:             "NX-OS Port-Channel Tool",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `Nxpo manages vPC port-channels on Cisco NX-OS switch pairs.

Context flags select the switch pair; commands operate on it.
Write commands preview changes by default — use -x to execute.

  nxpo -m <master> [-s <slave>] <verb> [args] [-x]`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for certain commands
		if isSettingsOrHelp(cmd) {
			return nil
		}

		// Load user settings
		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		// Apply defaults from settings
		if masterSwitch == "" {
			masterSwitch = userSettings.DefaultMaster
		}
		if slaveSwitch == "" {
			slaveSwitch = userSettings.DefaultSlave
		}
		if sshUser == "" {
			sshUser = userSettings.DefaultUser
		}

		// Set log level: quiet by default, verbose on -v
		if verbose {
			util.SetLogLevel("debug")
		} else {
			util.SetLogLevel("warn")
		}

		// Initialize audit logger
		auditLogger, err := audit.NewFileLogger(userSettings.GetAuditPath(), audit.RotationConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 10,
		})
		if err != nil {
			util.Warnf("Could not initialize audit logging: %v", err)
		} else {
			audit.SetDefaultLogger(auditLogger)
		}

		return nil
	},
}

func init() {
	// Context flags (switch pair selectors)
	rootCmd.PersistentFlags().StringVarP(&masterSwitch, "master", "m", "", "Master switch (host or user@host)")
	rootCmd.PersistentFlags().StringVarP(&slaveSwitch, "slave", "s", "", "Slave switch (host or user@host)")

	// Option flags (global)
	rootCmd.PersistentFlags().StringVarP(&sshUser, "user", "u", "", "SSH user")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Write flags on commands that mutate state
	for _, cmd := range []*cobra.Command{createCmd, purgeCmd} {
		cmd.Flags().BoolVarP(&executeMode, "execute", "x", false, "Execute commands (default is dry-run preview)")
	}

	// Output flags on commands that produce structured output
	for _, cmd := range []*cobra.Command{listCmd, showCmd, auditListCmd} {
		cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	}

	rootCmd.AddCommand(listCmd, showCmd, createCmd, purgeCmd, auditCmd, settingsCmd, versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		if version.Version == "dev" {
			fmt.Println("nxpo dev build (use 'make build' for version info)")
		} else {
			fmt.Printf("nxpo %s\n", version.Info())
		}
	},
}

// isSettingsOrHelp reports whether cmd runs without device or audit access.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "settings", "version", "help", "completion":
			return true
		}
	}
	return false
}

// switchTargets returns the target switches in master, slave order.
func switchTargets() ([]string, error) {
	if masterSwitch == "" {
		return nil, fmt.Errorf("master switch required: use -m <switch> flag")
	}
	targets := []string{masterSwitch}
	if slaveSwitch != "" {
		targets = append(targets, slaveSwitch)
	}
	return targets, nil
}

// sshPassword reads the SSH password from NXTOOL_SSH_PASS, prompting on the
// terminal when unset.
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

// connect opens the SSH transport and wraps it in a fresh session. The
// returned cleanup closes all device connections.
func connect() (*nxos.Session, func(), error) {
	pass, err := sshPassword()
	if err != nil {
		return nil, nil, err
	}
	exec := transport.NewSSHExecutor(sshUser, pass)
	session := nxos.NewSession(exec)
	cleanup := func() {
		if err := exec.Close(); err != nil {
			util.Warnf("closing connections: %v", err)
		}
	}
	return session, cleanup, nil
}

// auditUser is the identity recorded in audit events.
func auditUser() string {
	if sshUser != "" {
		return sshUser
	}
	return os.Getenv("USER")
}
