package util

import "strings"

// SplitCommaSeparated splits a comma-separated string and trims whitespace from
// each element. Empty input returns nil.
func SplitCommaSeparated(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// StripAnnotation removes a trailing parenthetical annotation from an
// interface name: "Eth1/1(P)" -> "Eth1/1". Names without an annotation are
// returned unchanged.
func StripAnnotation(name string) string {
	if i := strings.IndexByte(name, '('); i > 0 {
		return name[:i]
	}
	return name
}
