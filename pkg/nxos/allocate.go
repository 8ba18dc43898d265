package nxos

import (
	"context"
	"fmt"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// Aggregate identifier range. Identifier 1 is conventionally reserved on the
// modeled hardware, so allocation starts at 2.
const (
	MinChannelID = 2
	MaxChannelID = 4000
)

// Allocate returns the lowest aggregate identifier unused on every given
// switch. A dual-homed aggregate spans two switches, so the scan runs over
// the union of their inventories. Returns ErrAllocationExhausted when the
// whole range is in use; no identifier frees up within one invocation, so
// retrying is pointless.
//
// Two concurrent invocations can allocate the same identifier: there is no
// device-side lock to take. Accepted for operator-driven usage.
func Allocate(ctx context.Context, s *Session, switches ...string) (int, error) {
	used := make(map[int]bool)
	for _, sw := range switches {
		records, err := s.PortChannels(ctx, sw)
		if err != nil {
			return 0, fmt.Errorf("building inventory for %s: %w", sw, err)
		}
		for _, rec := range records {
			used[rec.ID] = true
		}
	}

	for id := MinChannelID; id <= MaxChannelID; id++ {
		if !used[id] {
			return id, nil
		}
	}
	return 0, fmt.Errorf("identifiers %d-%d all in use: %w",
		MinChannelID, MaxChannelID, util.ErrAllocationExhausted)
}
