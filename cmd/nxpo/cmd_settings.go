package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nxos-tools/nxtool/pkg/cli"
	"github.com/nxos-tools/nxtool/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent settings",
	Long: `Manage persistent settings stored in ~/.nxtool/settings.json.

Settings provide defaults for context flags:
  - default_user:   Used when -u is not specified
  - default_master: Used when -m is not specified
  - default_slave:  Used when -s is not specified
  - audit_path:     Audit log location

Examples:
  nxpo settings show
  nxpo settings set master sw1-a.example.net
  nxpo settings clear`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Settings file: %s\n\n", settings.DefaultSettingsPath())

		t := cli.NewTable("SETTING", "VALUE")

		printSetting := func(name, value string) {
			if value == "" {
				value = "(not set)"
			}
			t.Row(name, value)
		}

		printSetting("default_user", s.DefaultUser)
		printSetting("default_master", s.DefaultMaster)
		printSetting("default_slave", s.DefaultSlave)
		printSetting("audit_path", s.AuditPath)

		t.Flush()
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <setting> <value>",
	Short: "Set a setting value",
	Long: `Set a persistent setting value.

Available settings:
  user       - Default SSH user (-u flag default)
  master     - Default master switch (-m flag default)
  slave      - Default slave switch (-s flag default)
  audit_path - Audit log location

Examples:
  nxpo settings set user netops
  nxpo settings set master sw1-a.example.net`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setting := args[0]
		value := args[1]

		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}

		switch setting {
		case "user", "default_user":
			s.DefaultUser = value
			fmt.Printf("Default SSH user set to: %s\n", value)
		case "master", "default_master":
			s.DefaultMaster = value
			fmt.Printf("Default master switch set to: %s\n", value)
		case "slave", "default_slave":
			s.DefaultSlave = value
			fmt.Printf("Default slave switch set to: %s\n", value)
		case "audit_path":
			s.AuditPath = value
			fmt.Printf("Audit log path set to: %s\n", value)
		default:
			return fmt.Errorf("unknown setting: %s (valid: user, master, slave, audit_path)", setting)
		}

		return s.Save()
	},
}

var settingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all settings to defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			s = &settings.Settings{}
		}
		s.Clear()
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Println("Settings cleared")
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsClearCmd)
}
