// Package transport sends CLI commands to NX-OS switches and returns their
// textual output. The core packages depend only on the Executor capability,
// so tests run against canned transcripts instead of live devices.
package transport

import (
	"context"
	"strings"
)

// Executor runs a command on a named switch and returns its stdout verbatim
// (after noise filtering). Implementations are blocking; a hung remote
// session hangs the invocation.
type Executor interface {
	Execute(ctx context.Context, sw, command string) (string, error)
}

// noisePrefixes are lines the device or sshd emit around command output that
// are not part of the output itself (login banners, terminal warnings).
var noisePrefixes = []string{
	"Warning:",
	"Nexus ",
	"Copyright (",
	"TAC support:",
	"Cisco Nexus Operating System",
	"The copyrights to certain works",
}

// FilterNoise drops known banner and warning lines from raw command output.
func FilterNoise(raw string) string {
	lines := strings.Split(raw, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isNoise(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoise(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
