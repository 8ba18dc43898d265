package nxos

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// NX-OS renders `show ... | json` as {"TABLE_x": {"ROW_x": ...}} where ROW_x
// is an object for a single row and an array for several. decodeRows
// normalizes both shapes into a slice of maps.
func decodeRows(raw, tableKey, rowKey string) ([]map[string]any, error) {
	if strings.Contains(raw, "% Invalid command") {
		return nil, fmt.Errorf("%q rejected by device: %w", tableKey, util.ErrUnsupportedFeature)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("decoding %s output: %w", tableKey, err)
	}

	table, ok := doc[tableKey].(map[string]any)
	if !ok {
		return nil, nil
	}

	switch rows := table[rowKey].(type) {
	case map[string]any:
		return []map[string]any{rows}, nil
	case []any:
		out := make([]map[string]any, 0, len(rows))
		for _, r := range rows {
			if m, ok := r.(map[string]any); ok {
				out = append(out, m)
			}
		}
		return out, nil
	default:
		return nil, nil
	}
}

// rowString reads a field that the device may render as string or number.
func rowString(row map[string]any, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
