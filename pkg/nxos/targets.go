package nxos

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Target is one switch pair to sweep: a master and an optional standby
// slave. Entries are "host" or "user@host".
type Target struct {
	Master string `yaml:"master"`
	Slave  string `yaml:"slave,omitempty"`
}

type targetsFile struct {
	Targets []Target `yaml:"targets"`
}

// LoadTargets parses a YAML targets file:
//
//	targets:
//	  - master: netops@sw1-a.example.net
//	    slave: netops@sw1-b.example.net
//	  - master: sw2.example.net
func LoadTargets(path string) ([]Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading targets file: %w", err)
	}

	var f targetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing targets YAML: %w", err)
	}

	if len(f.Targets) == 0 {
		return nil, fmt.Errorf("targets file %s lists no targets", path)
	}
	for i, t := range f.Targets {
		if t.Master == "" {
			return nil, fmt.Errorf("target %d: master is required", i)
		}
	}
	return f.Targets, nil
}
