package nxos

import (
	"strconv"
	"strings"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// showPortChannelSummary is the inventory query. Its tabular output is the
// wire contract with the device CLI:
//
//	Group Port-       Type     Protocol  Member Ports
//	      Channel
//	--------------------------------------------------------------------------------
//	1     Po1(SU)     Eth      LACP      Eth1/1(P)    Eth1/2(P)
//	12    Po12(SD)    Eth      NONE      --
const showPortChannelSummary = "show port-channel summary"

// parsePortChannelSummary extracts records from raw inventory output.
// Parsing is best-effort: rows that do not match the expected shape are
// dropped and counted, never fatal. Table furniture (headers, dividers, the
// flag legend) is not counted as skipped.
func parsePortChannelSummary(raw string) (records []PortChannelRecord, skipped int) {
	for _, line := range strings.Split(raw, "\n") {
		if isTableFurniture(line) {
			continue
		}

		rec, ok := parseSummaryRow(line)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped
}

func parseSummaryRow(line string) (PortChannelRecord, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return PortChannelRecord{}, false
	}

	group, err := strconv.Atoi(fields[0])
	if err != nil {
		return PortChannelRecord{}, false
	}

	id, ok := parseChannelName(util.StripAnnotation(fields[1]))
	if !ok {
		return PortChannelRecord{}, false
	}

	rec := PortChannelRecord{
		Group:    group,
		ID:       id,
		Type:     fields[2],
		Protocol: fields[3],
	}

	for _, member := range fields[4:] {
		if member == "--" {
			continue
		}
		rec.Members = append(rec.Members, util.StripAnnotation(member))
	}
	return rec, true
}

// parseChannelName extracts the numeric suffix of a "PoN" name.
func parseChannelName(name string) (int, bool) {
	if !strings.HasPrefix(name, "Po") {
		return 0, false
	}
	id, err := strconv.Atoi(name[2:])
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// isTableFurniture recognizes the non-data lines the device prints around the
// summary table.
func isTableFurniture(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "Flags:"):
		return true
	case strings.HasPrefix(trimmed, "-"):
		return true
	case strings.HasPrefix(trimmed, "Group"), strings.HasPrefix(trimmed, "Channel"):
		return true
	case strings.Contains(line, " - "): // flag legend continuation
		return true
	}
	return false
}
