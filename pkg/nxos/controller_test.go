package nxos

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nxos-tools/nxtool/pkg/audit"
	"github.com/nxos-tools/nxtool/pkg/transport"
	"github.com/nxos-tools/nxtool/pkg/util"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Description:  "uplink-rack7",
		NativeVLAN:   10,
		AllowedVLANs: []int{20, 30},
		Mode:         ModeTrunk,
		Ports: []SwitchPorts{
			{Switch: "sw1", Ports: []string{"Eth1/1", "Eth1/2"}},
			{Switch: "sw2", Ports: []string{"Eth1/1", "Eth1/2"}},
		},
	}
}

func TestCreatePlanValidationBeforeDeviceContact(t *testing.T) {
	fake := transport.NewFake()
	c := NewController(NewSession(fake), "netops")

	req := validCreateRequest()
	req.Description = ""
	req.AllowedVLANs = nil

	_, _, err := c.CreatePlan(context.Background(), req)
	if !errors.Is(err, util.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("missing description failure: %v", err)
	}
	if !strings.Contains(err.Error(), "allowed-VLAN list is required") {
		t.Errorf("missing allowed-vlan failure: %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("validation failure must not contact any switch:\n%s", fake)
	}
}

func TestCreatePlanAccessModeRejectedBeforeDeviceContact(t *testing.T) {
	fake := transport.NewFake()
	c := NewController(NewSession(fake), "netops")

	req := validCreateRequest()
	req.Mode = ModeAccess
	req.AllowedVLANs = nil // access mode has no allowed list

	_, _, err := c.CreatePlan(context.Background(), req)
	if !errors.Is(err, util.ErrUnsupportedMode) {
		t.Fatalf("expected ErrUnsupportedMode, got %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("unsupported mode must not contact any switch:\n%s", fake)
	}
}

func TestCreatePlanSharedIdentifierAcrossSwitches(t *testing.T) {
	fake := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summaryWithIDs(2, 3)).
		Stub("sw2", showPortChannelSummary, summaryWithIDs(4, 5))
	c := NewController(NewSession(fake), "netops")

	id, plans, err := c.CreatePlan(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if id != 6 {
		t.Errorf("allocated id = %d, want 6", id)
	}
	if len(plans) != 2 {
		t.Fatalf("expected one plan per switch, got %d", len(plans))
	}
	for _, plan := range plans {
		if plan.ID != id {
			t.Errorf("plan for %s carries id %d, want shared id %d", plan.Switch, plan.ID, id)
		}
		joined := strings.Join(plan.Commands, "\n")
		if !strings.Contains(joined, "interface port-channel6") {
			t.Errorf("plan for %s does not configure port-channel6:\n%s", plan.Switch, joined)
		}
	}
}

func TestCreateExecuteThenShowRoundTrip(t *testing.T) {
	ctx := context.Background()

	// Invocation 1: create. sw1 has 2-3 in use, so 4 is allocated.
	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, summaryWithIDs(2, 3))
	c := NewController(NewSession(fake), "netops")

	req := validCreateRequest()
	req.Ports = req.Ports[:1] // single switch

	id, plans, err := c.CreatePlan(ctx, req)
	if err != nil {
		t.Fatalf("CreatePlan: %v", err)
	}
	if id != 4 {
		t.Fatalf("allocated id = %d, want 4", id)
	}

	reports := c.Execute(ctx, "create", plans)
	if len(reports) != 1 || reports[0].Err != nil {
		t.Fatalf("Execute reports: %+v", reports)
	}

	// The executed batch must reference the allocated identifier.
	batch := fake.Calls[len(fake.Calls)-1].Command
	if !strings.Contains(batch, "interface port-channel4") || !strings.Contains(batch, "vpc 4") {
		t.Errorf("executed batch does not reference allocated id 4:\n%s", batch)
	}

	// Invocation 2: show. The device now reports Po4.
	fake2 := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summaryWithIDs(2, 3, 4)).
		Stub("sw1", "show running-config interface port-channel4", "interface port-channel4\n  switchport mode trunk\n")
	c2 := NewController(NewSession(fake2), "netops")

	showReports := c2.Show(ctx, id, []string{"sw1"})
	if len(showReports) != 1 || showReports[0].Err != nil {
		t.Fatalf("Show reports: %+v", showReports)
	}
	if !strings.Contains(showReports[0].Output, "interface port-channel4") {
		t.Errorf("show output does not reference allocated id: %q", showReports[0].Output)
	}
}

func TestShowMissingOnOneSwitchContinues(t *testing.T) {
	fake := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summaryWithIDs(12)).
		Stub("sw1", "show running-config interface port-channel12", "interface port-channel12\n").
		Stub("sw2", showPortChannelSummary, summaryWithIDs(7))
	c := NewController(NewSession(fake), "netops")

	reports := c.Show(context.Background(), 12, []string{"sw2", "sw1"})
	if len(reports) != 2 {
		t.Fatalf("expected reports for both switches, got %d", len(reports))
	}
	if !errors.Is(reports[0].Err, util.ErrNotFound) {
		t.Errorf("sw2 should report not-found, got %v", reports[0].Err)
	}
	if reports[1].Err != nil || !strings.Contains(reports[1].Output, "port-channel12") {
		t.Errorf("sw1 should still be shown after sw2 miss: %+v", reports[1])
	}
}

func TestShowQueriesMembersToo(t *testing.T) {
	summary := "Group Port-       Type     Protocol  Member Ports\n" +
		"      Channel\n" +
		"12    Po12(SU)    Eth      LACP      Eth1/1(P)    Eth1/2(P)\n"
	fake := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summary).
		Stub("sw1", "show running-config interface port-channel12", "interface port-channel12\n").
		Stub("sw1", "show running-config interface Eth1/1", "interface Ethernet1/1\n").
		Stub("sw1", "show running-config interface Eth1/2", "interface Ethernet1/2\n")
	c := NewController(NewSession(fake), "netops")

	reports := c.Show(context.Background(), 12, []string{"sw1"})
	if reports[0].Err != nil {
		t.Fatalf("Show: %v", reports[0].Err)
	}
	for _, want := range []string{"port-channel12", "Ethernet1/1", "Ethernet1/2"} {
		if !strings.Contains(reports[0].Output, want) {
			t.Errorf("show output missing %s:\n%s", want, reports[0].Output)
		}
	}
}

func TestPurgePlanUsesInventoryMembers(t *testing.T) {
	summary := "Group Port-       Type     Protocol  Member Ports\n" +
		"12    Po12(SU)    Eth      LACP      Eth1/1(P)    Eth1/2(P)\n"
	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, summary)
	c := NewController(NewSession(fake), "netops")

	plans := c.PurgePlan(context.Background(), 12, []string{"sw1"})
	if len(plans) != 1 || plans[0].Err != nil {
		t.Fatalf("PurgePlan: %+v", plans)
	}
	joined := strings.Join(plans[0].Commands, "\n")
	if !strings.Contains(joined, "default interface Eth1/1,Eth1/2") {
		t.Errorf("purge must reset former members:\n%s", joined)
	}
}

func TestPurgePartialSuccessAcrossSwitches(t *testing.T) {
	fake := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summaryWithIDs(12)).
		Stub("sw2", showPortChannelSummary, summaryWithIDs(7))
	c := NewController(NewSession(fake), "netops")
	ctx := context.Background()

	plans := c.PurgePlan(ctx, 12, []string{"sw1", "sw2"})
	reports := c.Execute(ctx, "purge", plans)

	if reports[0].Err != nil {
		t.Errorf("sw1 purge should succeed: %v", reports[0].Err)
	}
	if !errors.Is(reports[1].Err, util.ErrNotFound) {
		t.Errorf("sw2 should report not-found: %v", reports[1].Err)
	}

	// sw2 must only have been queried, never configured.
	for _, cmd := range fake.CommandsFor("sw2") {
		if strings.Contains(cmd, "configure terminal") {
			t.Errorf("sw2 must not be configured: %q", cmd)
		}
	}
}

func TestExecuteTransportFailureIsolatedPerSwitch(t *testing.T) {
	fake := transport.NewFake().
		Stub("sw1", showPortChannelSummary, summaryWithIDs(12)).
		Stub("sw2", showPortChannelSummary, summaryWithIDs(12))
	c := NewController(NewSession(fake), "netops")
	ctx := context.Background()

	plans := c.PurgePlan(ctx, 12, []string{"sw1", "sw2"})

	// Planning used cached inventories; now sw1's transport dies.
	fake.Fail("sw1", errors.New("broken pipe"))

	reports := c.Execute(ctx, "purge", plans)
	if !errors.Is(reports[0].Err, util.ErrTransport) {
		t.Errorf("sw1 should report transport failure: %v", reports[0].Err)
	}
	if reports[1].Err != nil {
		t.Errorf("sw2 should still be attempted and succeed: %v", reports[1].Err)
	}
}

func TestExecuteWritesAuditEvents(t *testing.T) {
	logger, err := audit.NewFileLogger(filepath.Join(t.TempDir(), "audit.log"), audit.RotationConfig{})
	if err != nil {
		t.Fatal(err)
	}
	defer logger.Close()
	audit.SetDefaultLogger(logger)
	defer audit.SetDefaultLogger(nil)

	fake := transport.NewFake().Stub("sw1", showPortChannelSummary, summaryWithIDs(12))
	c := NewController(NewSession(fake), "netops")
	ctx := context.Background()

	plans := c.PurgePlan(ctx, 12, []string{"sw1"})
	c.Execute(ctx, "purge", plans)

	events, err := logger.Query(audit.Filter{Operation: "purge"})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 audit event, got %d", len(events))
	}
	ev := events[0]
	if ev.User != "netops" || ev.Switch != "sw1" || ev.PortChannel != 12 || !ev.Success {
		t.Errorf("audit event wrong: %+v", ev)
	}
	if len(ev.Commands) == 0 {
		t.Error("audit event should carry the command batch")
	}
}
