// Package settings manages persistent user settings for the nxtool CLIs.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultUser is the SSH user when -u is not specified
	DefaultUser string `json:"default_user,omitempty"`

	// DefaultMaster is the master switch when -m is not specified
	DefaultMaster string `json:"default_master,omitempty"`

	// DefaultSlave is the slave switch when -s is not specified
	DefaultSlave string `json:"default_slave,omitempty"`

	// AuditPath overrides the default audit log location
	AuditPath string `json:"audit_path,omitempty"`
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nxtool_settings.json"
	}
	return filepath.Join(home, ".nxtool", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetAuditPath returns the audit log path (with fallback)
func (s *Settings) GetAuditPath() string {
	if s.AuditPath != "" {
		return s.AuditPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "nxtool_audit.log"
	}
	return filepath.Join(home, ".nxtool", "audit.log")
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
