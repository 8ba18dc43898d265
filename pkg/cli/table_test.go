package cli

import (
	"strings"
	"testing"
)

func TestTableEmptyProducesNoOutput(t *testing.T) {
	var buf strings.Builder
	tbl := NewTableTo(&buf, "GROUP", "ID", "MEMBERS")
	tbl.Flush()

	if buf.Len() != 0 {
		t.Errorf("empty table should print nothing, got %q", buf.String())
	}
}

func TestTableHeadersAndRows(t *testing.T) {
	var buf strings.Builder
	tbl := NewTableTo(&buf, "ID", "PROTOCOL")
	tbl.Row("12", "LACP")
	tbl.Row("20", "NONE")
	tbl.Flush()

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, divider, and 2 rows; got %d lines:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PROTOCOL") {
		t.Errorf("header line wrong: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "--") {
		t.Errorf("divider line wrong: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "12") {
		t.Errorf("first row wrong: %q", lines[2])
	}
}

func TestTableHeadersWrittenOnce(t *testing.T) {
	var buf strings.Builder
	tbl := NewTableTo(&buf, "ID")
	tbl.Row("1")
	tbl.Row("2")
	tbl.Flush()

	if n := strings.Count(buf.String(), "ID"); n != 1 {
		t.Errorf("headers should appear once, got %d occurrences", n)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\nb\n", "  ")
	want := "  a\n  b\n"
	if got != want {
		t.Errorf("Indent = %q, want %q", got, want)
	}
	if Indent("", "  ") != "" {
		t.Error("Indent of empty string should stay empty")
	}
}
