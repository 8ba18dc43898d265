// Package audit provides audit logging for device-touching operations.
package audit

import (
	"fmt"
	"time"
)

// Event records one operation against one switch: what was requested, the
// exact command batch sent (or previewed), and the outcome.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	User        string        `json:"user"`
	Switch      string        `json:"switch"`
	Operation   string        `json:"operation"`
	PortChannel int           `json:"port_channel,omitempty"`
	Commands    []string      `json:"commands,omitempty"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	DryRun      bool          `json:"dry_run"`
	Duration    time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	Switch      string
	User        string
	Operation   string
	StartTime   time.Time
	EndTime     time.Time
	FailureOnly bool
	Limit       int
}

// NewEvent creates a new audit event
func NewEvent(user, sw, operation string) *Event {
	return &Event{
		ID:        fmt.Sprintf("%d", time.Now().UnixNano()),
		Timestamp: time.Now(),
		User:      user,
		Switch:    sw,
		Operation: operation,
	}
}

// WithPortChannel sets the port-channel identifier
func (e *Event) WithPortChannel(id int) *Event {
	e.PortChannel = id
	return e
}

// WithCommands sets the command batch
func (e *Event) WithCommands(commands []string) *Event {
	e.Commands = commands
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDryRun marks the event as a preview that touched no device
func (e *Event) WithDryRun(dryRun bool) *Event {
	e.DryRun = dryRun
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}
