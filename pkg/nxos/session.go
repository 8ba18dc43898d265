package nxos

import (
	"context"

	"github.com/nxos-tools/nxtool/pkg/transport"
	"github.com/nxos-tools/nxtool/pkg/util"
)

// Session scopes device queries to one invocation. Read commands are issued
// at most once per switch and memoized; there is no persistence across
// invocations. Sessions are not safe for concurrent use; the workflows that
// drive them are sequential.
type Session struct {
	exec transport.Executor

	queries     map[string]string
	inventories map[string][]PortChannelRecord
	skipped     map[string]int
}

// NewSession creates a session over the given executor.
func NewSession(exec transport.Executor) *Session {
	return &Session{
		exec:        exec,
		queries:     make(map[string]string),
		inventories: make(map[string][]PortChannelRecord),
		skipped:     make(map[string]int),
	}
}

// Query runs a read-only show command on the switch, memoized per
// (switch, command) for the session lifetime.
func (s *Session) Query(ctx context.Context, sw, command string) (string, error) {
	key := sw + "\x00" + command
	if out, ok := s.queries[key]; ok {
		return out, nil
	}

	out, err := s.exec.Execute(ctx, sw, command)
	if err != nil {
		return "", err
	}
	s.queries[key] = out
	return out, nil
}

// Run executes a command without memoization. Used for configuration pushes.
func (s *Session) Run(ctx context.Context, sw, command string) (string, error) {
	return s.exec.Execute(ctx, sw, command)
}

// PortChannels returns the switch's port-channel inventory, querying the
// device on first use.
func (s *Session) PortChannels(ctx context.Context, sw string) ([]PortChannelRecord, error) {
	if records, ok := s.inventories[sw]; ok {
		return records, nil
	}

	raw, err := s.Query(ctx, sw, showPortChannelSummary)
	if err != nil {
		return nil, err
	}

	records, skipped := parsePortChannelSummary(raw)
	if skipped > 0 {
		util.WithSwitch(sw).Debugf("inventory: skipped %d unparseable rows", skipped)
	}
	s.inventories[sw] = records
	s.skipped[sw] = skipped
	return records, nil
}

// Lookup finds a port-channel by aggregate identifier on one switch.
func (s *Session) Lookup(ctx context.Context, sw string, id int) (PortChannelRecord, error) {
	records, err := s.PortChannels(ctx, sw)
	if err != nil {
		return PortChannelRecord{}, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return PortChannelRecord{}, &util.NotFoundError{Switch: sw, ID: id}
}

// SkippedRows reports how many inventory rows were dropped as unparseable
// for a switch. Zero before the inventory has been built.
func (s *Session) SkippedRows(sw string) int {
	return s.skipped[sw]
}
