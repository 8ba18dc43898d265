package nxos

import (
	"context"
	"reflect"
	"testing"

	"github.com/nxos-tools/nxtool/pkg/transport"
)

const summaryTwoChannels = `Flags:  D - Down        P - Up in port-channel (members)
        I - Individual  H - Hot-standby (LACP only)
        s - Suspended   r - Module-removed
        S - Switched    R - Routed
        U - Up (port-channel)
--------------------------------------------------------------------------------
Group Port-       Type     Protocol  Member Ports
      Channel
--------------------------------------------------------------------------------
2     Po2(SU)     Eth      LACP      Eth1/1(P)    Eth1/2(P)
3     Po3(SD)     Eth      NONE      --
`

func TestParsePortChannelSummary(t *testing.T) {
	records, skipped := parsePortChannelSummary(summaryTwoChannels)

	if skipped != 0 {
		t.Errorf("well-formed output should skip nothing, skipped %d", skipped)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d: %+v", len(records), records)
	}

	want := PortChannelRecord{
		Group:    2,
		ID:       2,
		Type:     "Eth",
		Protocol: "LACP",
		Members:  []string{"Eth1/1", "Eth1/2"},
	}
	if !reflect.DeepEqual(records[0], want) {
		t.Errorf("first record:\n got %+v\nwant %+v", records[0], want)
	}

	if records[1].ID != 3 || records[1].Protocol != "NONE" {
		t.Errorf("second record wrong: %+v", records[1])
	}
	if records[1].Members != nil {
		t.Errorf("\"--\" should mean no members, got %v", records[1].Members)
	}
}

func TestParsePortChannelSummaryUniqueIDs(t *testing.T) {
	records, _ := parsePortChannelSummary(summaryTwoChannels)

	seen := make(map[int]bool)
	for _, rec := range records {
		if seen[rec.ID] {
			t.Errorf("duplicate id %d in snapshot", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestParsePortChannelSummarySkipsMalformedRows(t *testing.T) {
	raw := summaryTwoChannels +
		"bogus unparseable row x\n" +
		"xx    Po9(SU)     Eth      LACP      Eth1/9(P)\n" +
		"7     NotAPo      Eth      LACP      Eth1/7(P)\n"

	records, skipped := parsePortChannelSummary(raw)
	if len(records) != 2 {
		t.Errorf("malformed rows must not become records: got %d", len(records))
	}
	if skipped != 3 {
		t.Errorf("expected 3 skipped rows, got %d", skipped)
	}
}

func TestParsePortChannelSummaryEmpty(t *testing.T) {
	records, skipped := parsePortChannelSummary("")
	if len(records) != 0 || skipped != 0 {
		t.Errorf("empty output: got %d records, %d skipped", len(records), skipped)
	}
}

func TestSessionMemoizesInventory(t *testing.T) {
	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, summaryTwoChannels)
	s := NewSession(fake)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := s.PortChannels(ctx, "sw1"); err != nil {
			t.Fatalf("PortChannels: %v", err)
		}
	}

	if n := len(fake.CommandsFor("sw1")); n != 1 {
		t.Errorf("inventory query should run once per invocation, ran %d times", n)
	}
}

func TestSessionSkippedRowsObservable(t *testing.T) {
	raw := summaryTwoChannels + "half a row\n"
	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, raw)
	s := NewSession(fake)

	if got := s.SkippedRows("sw1"); got != 0 {
		t.Errorf("skipped count before inventory build should be 0, got %d", got)
	}
	if _, err := s.PortChannels(context.Background(), "sw1"); err != nil {
		t.Fatal(err)
	}
	if got := s.SkippedRows("sw1"); got != 1 {
		t.Errorf("SkippedRows = %d, want 1", got)
	}
}

func TestSessionLookup(t *testing.T) {
	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, summaryTwoChannels)
	s := NewSession(fake)
	ctx := context.Background()

	rec, err := s.Lookup(ctx, "sw1", 2)
	if err != nil {
		t.Fatalf("Lookup(2): %v", err)
	}
	if rec.ID != 2 || len(rec.Members) != 2 {
		t.Errorf("Lookup(2) = %+v", rec)
	}

	if _, err := s.Lookup(ctx, "sw1", 99); err == nil {
		t.Error("Lookup of absent id should fail")
	}
}
