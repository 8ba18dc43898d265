package transport

import (
	"context"
	"fmt"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// Fake is an Executor backed by canned transcripts, keyed by switch then
// command. Used in tests and dry-run verification.
type Fake struct {
	// Transcripts maps switch -> command -> output.
	Transcripts map[string]map[string]string

	// Errors maps switch -> error returned for every command on that switch.
	Errors map[string]error

	// Calls records every (switch, command) pair in execution order.
	Calls []FakeCall
}

// FakeCall is one recorded Execute invocation.
type FakeCall struct {
	Switch  string
	Command string
}

// NewFake creates a Fake with empty transcripts.
func NewFake() *Fake {
	return &Fake{Transcripts: make(map[string]map[string]string)}
}

// Stub registers output for a switch/command pair.
func (f *Fake) Stub(sw, command, output string) *Fake {
	if f.Transcripts[sw] == nil {
		f.Transcripts[sw] = make(map[string]string)
	}
	f.Transcripts[sw][command] = output
	return f
}

// Fail makes every command on the switch return err.
func (f *Fake) Fail(sw string, err error) *Fake {
	if f.Errors == nil {
		f.Errors = make(map[string]error)
	}
	f.Errors[sw] = err
	return f
}

// Execute returns the canned output for the pair. Commands without a stub
// return empty output, matching a device that prints nothing.
func (f *Fake) Execute(ctx context.Context, sw, command string) (string, error) {
	f.Calls = append(f.Calls, FakeCall{Switch: sw, Command: command})

	if err := f.Errors[sw]; err != nil {
		return "", util.NewTransportError(sw, command, err)
	}
	return f.Transcripts[sw][command], nil
}

// CommandsFor returns the commands executed on a switch, in order.
func (f *Fake) CommandsFor(sw string) []string {
	var cmds []string
	for _, call := range f.Calls {
		if call.Switch == sw {
			cmds = append(cmds, call.Command)
		}
	}
	return cmds
}

// String summarizes recorded calls, for test failure messages.
func (f *Fake) String() string {
	s := ""
	for _, call := range f.Calls {
		s += fmt.Sprintf("%s: %s\n", call.Switch, call.Command)
	}
	return s
}
