package nxos

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nxos-tools/nxtool/pkg/audit"
	"github.com/nxos-tools/nxtool/pkg/util"
)

// Controller sequences the show/purge/create workflows across one or two
// switches. Each invocation is one-shot: validate, allocate (create only),
// emit, execute per switch, report. Per-switch failures are isolated, so a
// dual-switch operation degrades to partial success. There is no rollback:
// if the first switch succeeds and the second fails, the first is left
// configured and the report says so.
type Controller struct {
	Session *Session
	User    string // recorded in audit events
}

// NewController creates a controller over the session.
func NewController(s *Session, user string) *Controller {
	return &Controller{Session: s, User: user}
}

// Plan is the command batch prepared for one switch. A non-nil Err (the
// port-channel was not found, or inventory could not be read) makes the plan
// a no-op that Execute reports without touching the switch.
type Plan struct {
	Switch   string
	ID       int
	Commands []string
	Err      error
}

// Report is the outcome of one switch's part of an operation.
type Report struct {
	Switch string
	Output string
	Err    error
}

// SwitchPorts names the member ports to bundle on one switch.
type SwitchPorts struct {
	Switch string
	Ports  []string
}

// CreateRequest carries the validated caller input for Create.
type CreateRequest struct {
	Description  string
	NativeVLAN   int
	AllowedVLANs []int
	Mode         Mode
	Ports        []SwitchPorts
}

// Switches returns the target switch names in request order.
func (r CreateRequest) Switches() []string {
	switches := make([]string, len(r.Ports))
	for i, sp := range r.Ports {
		switches[i] = sp.Switch
	}
	return switches
}

// Show fetches the running config of the logical interface and all its
// members on each switch. A switch where the id is absent yields a warning
// report and processing continues with the remaining switches.
func (c *Controller) Show(ctx context.Context, id int, switches []string) []Report {
	reports := make([]Report, 0, len(switches))

	for _, sw := range switches {
		rec, err := c.Session.Lookup(ctx, sw, id)
		if err != nil {
			if errors.Is(err, util.ErrNotFound) {
				util.WithSwitch(sw).Warnf("port-channel %d not found", id)
			}
			reports = append(reports, Report{Switch: sw, Err: err})
			continue
		}

		interfaces := append([]string{fmt.Sprintf("port-channel%d", id)}, rec.Members...)
		var out strings.Builder
		var swErr error
		for _, iface := range interfaces {
			text, err := c.Session.Query(ctx, sw, "show running-config interface "+iface)
			if err != nil {
				swErr = err
				break
			}
			out.WriteString(text)
			if !strings.HasSuffix(text, "\n") {
				out.WriteString("\n")
			}
		}
		reports = append(reports, Report{Switch: sw, Output: out.String(), Err: swErr})
	}
	return reports
}

// PurgePlan prepares removal batches for each switch. Member lists come from
// the inventory; a switch without the port-channel gets a no-op plan carrying
// the not-found condition.
func (c *Controller) PurgePlan(ctx context.Context, id int, switches []string) []Plan {
	plans := make([]Plan, 0, len(switches))

	for _, sw := range switches {
		rec, err := c.Session.Lookup(ctx, sw, id)
		if err != nil {
			if errors.Is(err, util.ErrNotFound) {
				util.WithSwitch(sw).Warnf("port-channel %d not found, nothing to purge", id)
			}
			plans = append(plans, Plan{Switch: sw, ID: id, Err: err})
			continue
		}
		plans = append(plans, Plan{Switch: sw, ID: id, Commands: EmitPurge(id, rec.Members)})
	}
	return plans
}

// CreatePlan validates the request, allocates one identifier shared by all
// target switches, and prepares per-switch creation batches. Validation or
// allocation failure aborts before any device is touched.
func (c *Controller) CreatePlan(ctx context.Context, req CreateRequest) (int, []Plan, error) {
	if err := validateCreate(req); err != nil {
		return 0, nil, err
	}
	if req.Mode == ModeAccess {
		return 0, nil, fmt.Errorf("create: access mode: %w", util.ErrUnsupportedMode)
	}

	id, err := Allocate(ctx, c.Session, req.Switches()...)
	if err != nil {
		return 0, nil, err
	}
	util.WithOperation("create").Debugf("allocated port-channel identifier %d", id)

	plans := make([]Plan, 0, len(req.Ports))
	for _, sp := range req.Ports {
		commands, err := EmitCreate(ProvisioningSpec{
			Description:  req.Description,
			ID:           id,
			Members:      sp.Ports,
			NativeVLAN:   req.NativeVLAN,
			AllowedVLANs: req.AllowedVLANs,
			Mode:         req.Mode,
		})
		if err != nil {
			return 0, nil, err
		}
		plans = append(plans, Plan{Switch: sp.Switch, ID: id, Commands: commands})
	}
	return id, plans, nil
}

// Execute sends each plan's batch to its switch as a single remote command
// (the device accepts " ; "-joined config sequences) and audits the outcome.
// Plans carrying a planning error are reported and skipped.
func (c *Controller) Execute(ctx context.Context, operation string, plans []Plan) []Report {
	reports := make([]Report, 0, len(plans))

	for _, plan := range plans {
		if plan.Err != nil {
			reports = append(reports, Report{Switch: plan.Switch, Err: plan.Err})
			continue
		}

		start := time.Now()
		output, err := c.Session.Run(ctx, plan.Switch, strings.Join(plan.Commands, " ; "))

		event := audit.NewEvent(c.User, plan.Switch, operation).
			WithPortChannel(plan.ID).
			WithCommands(plan.Commands).
			WithDuration(time.Since(start))
		if err != nil {
			event.WithError(err)
			util.WithSwitch(plan.Switch).Errorf("%s failed: %v", operation, err)
		} else {
			event.WithSuccess()
			util.WithSwitch(plan.Switch).Infof("%s: port-channel%d configured", operation, plan.ID)
		}
		if auditErr := audit.Log(event); auditErr != nil {
			util.Warnf("audit: %v", auditErr)
		}

		reports = append(reports, Report{Switch: plan.Switch, Output: output, Err: err})
	}
	return reports
}

func validateCreate(req CreateRequest) error {
	var v util.ValidationBuilder
	v.Require(req.Description != "", "description is required")
	v.Require(req.NativeVLAN > 0, "native VLAN is required")
	if req.NativeVLAN > 0 {
		if err := util.ValidateVLANID(req.NativeVLAN); err != nil {
			v.AddErrorf("%v", err)
		}
	}
	if req.Mode == "" || req.Mode == ModeTrunk {
		v.Require(len(req.AllowedVLANs) > 0, "allowed-VLAN list is required in trunk mode")
	}
	v.Require(len(req.Ports) > 0, "at least one switch with member ports is required")
	for _, sp := range req.Ports {
		if sp.Switch == "" {
			v.AddErrorf("switch name missing for port group %v", sp.Ports)
		}
		if len(sp.Ports) == 0 {
			v.AddErrorf("member ports are required for %s", sp.Switch)
		}
	}
	return v.Build()
}
