package nxos

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nxos-tools/nxtool/pkg/util"
)

// Reader gathers VLAN-level configuration facts (SVI addressing, VRF
// binding, HSRP roles, VXLAN VNIs) from one switch. All queries go through
// the session cache, so each show command hits the device once per
// invocation no matter how many VLANs reference it.
type Reader struct {
	session *Session
	sw      string
}

// NewReader creates a reader for one switch.
func NewReader(s *Session, sw string) *Reader {
	return &Reader{session: s, sw: sw}
}

// VLANBrief is one row of the VLAN table.
type VLANBrief struct {
	ID   string
	Name string
}

// HSRPGroup is the HSRP addressing of one SVI.
type HSRPGroup struct {
	Active  string
	Standby string
	VIP     string
}

// VLANEntry is one gathered inventory record, master/slave merged.
type VLANEntry struct {
	VLANID   string `json:"vlan_id"`
	Name     string `json:"name"`
	VRF      string `json:"vrf,omitempty"`
	VNI      string `json:"vni,omitempty"`
	MasterIP string `json:"masterip,omitempty"`
	SlaveIP  string `json:"slaveip,omitempty"`
	VIP      string `json:"vip,omitempty"`
	Mask     string `json:"mask,omitempty"`
	L3       bool   `json:"is_l3,omitempty"`
}

// InventoryLine renders the entry as an inline-YAML inventory item, the
// format consumed by the downstream provisioning playbooks.
func (e VLANEntry) InventoryLine() string {
	parts := []string{
		fmt.Sprintf("name: '%s'", e.Name),
		"vlan_id: " + e.VLANID,
	}
	switch {
	case e.VNI != "":
		parts = append(parts,
			fmt.Sprintf("vrf: '%s'", e.VRF),
			fmt.Sprintf("isL3: %t", e.L3),
			"vni: "+e.VNI,
		)
		if !e.L3 {
			parts = append(parts, "gwip: "+e.MasterIP, "mask: "+e.Mask)
		}
	case e.MasterIP != "":
		parts = append(parts,
			fmt.Sprintf("vrf: '%s'", e.VRF),
			"masterip: "+e.MasterIP,
			"slaveip: "+e.SlaveIP,
			"mask: "+e.Mask,
		)
		if e.VIP != "" {
			parts = append(parts, "vip: "+e.VIP)
		}
	}
	return "- { " + strings.Join(parts, ", ") + " }"
}

// VLANs lists all VLANs on the switch.
func (r *Reader) VLANs(ctx context.Context) ([]VLANBrief, error) {
	raw, err := r.session.Query(ctx, r.sw, "show vlan all | json")
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw, "TABLE_vlanbriefallports", "ROW_vlanbriefallports")
	if err != nil {
		return nil, err
	}

	vlans := make([]VLANBrief, 0, len(rows))
	for _, row := range rows {
		id := rowString(row, "vlanshowbr-vlanid")
		if id == "" {
			continue
		}
		vlans = append(vlans, VLANBrief{ID: id, Name: rowString(row, "vlanshowbr-vlanname")})
	}
	return vlans, nil
}

// SVIAddress returns the address and mask configured on an SVI, empty when
// the interface has no layer-3 configuration or does not exist.
func (r *Reader) SVIAddress(ctx context.Context, iface string) (addr, mask string, err error) {
	raw, err := r.session.Query(ctx, r.sw, "show interface | json")
	if err != nil {
		return "", "", err
	}
	rows, err := decodeRows(raw, "TABLE_interface", "ROW_interface")
	if err != nil {
		return "", "", err
	}

	for _, row := range rows {
		if rowString(row, "interface") == iface {
			return rowString(row, "svi_ip_addr"), rowString(row, "svi_ip_mask"), nil
		}
	}
	return "", "", nil
}

// VRFFor returns the VRF an interface is bound to, "default" when unbound.
func (r *Reader) VRFFor(ctx context.Context, iface string) (string, error) {
	raw, err := r.session.Query(ctx, r.sw, "show vrf all interface | json")
	if err != nil {
		return "", err
	}
	rows, err := decodeRows(raw, "TABLE_if", "ROW_if")
	if err != nil {
		return "", err
	}

	vrf := "default"
	for _, row := range rows {
		if rowString(row, "if_name") == iface {
			vrf = rowString(row, "vrf_name")
		}
	}
	return vrf, nil
}

// HSRP returns the HSRP group on an SVI, or nil when the SVI runs none.
// Platforms without HSRP surface ErrUnsupportedFeature.
func (r *Reader) HSRP(ctx context.Context, iface string) (*HSRPGroup, error) {
	raw, err := r.session.Query(ctx, r.sw, "show hsrp all | json")
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw, "TABLE_grp_detail", "ROW_grp_detail")
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		if rowString(row, "sh_if_index") == iface {
			return &HSRPGroup{
				Active:  rowString(row, "sh_active_router_addr"),
				Standby: rowString(row, "sh_standby_router_addr"),
				VIP:     rowString(row, "sh_vip"),
			}, nil
		}
	}
	return nil, nil
}

// VXLANMap returns the vlan-id to VNI mapping from the plain-text
// `show vxlan` table.
func (r *Reader) VXLANMap(ctx context.Context) (map[string]string, error) {
	raw, err := r.session.Query(ctx, r.sw, "show vxlan")
	if err != nil {
		return nil, err
	}

	vnis := make(map[string]string)
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "Vlan") || strings.HasPrefix(trimmed, "=") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		vnis[fields[0]] = fields[1]
	}
	return vnis, nil
}

// MACCounts returns the number of learned (non-gateway) MAC addresses per
// VLAN id.
func (r *Reader) MACCounts(ctx context.Context) (map[string]int, error) {
	raw, err := r.session.Query(ctx, r.sw, "show mac address-table | json")
	if err != nil {
		return nil, err
	}
	rows, err := decodeRows(raw, "TABLE_mac_address", "ROW_mac_address")
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, row := range rows {
		if rowString(row, "disp_type") == "G" {
			continue
		}
		vlan := rowString(row, "disp_vlan")
		if vlan == "" {
			continue
		}
		counts[vlan]++
	}
	return counts, nil
}

// GatherEntries walks the master switch's VLANs and assembles one entry per
// VLAN. In HSRP mode the standby address comes from the HSRP group, falling
// back to the slave switch's SVI when no group exists. In VXLAN mode HSRP
// and the slave are ignored and the VNI mapping drives the L2/L3 split.
func GatherEntries(ctx context.Context, master, slave *Reader, vxlan bool) ([]VLANEntry, error) {
	vlans, err := master.VLANs(ctx)
	if err != nil {
		return nil, err
	}

	var vnis map[string]string
	if vxlan {
		if vnis, err = master.VXLANMap(ctx); err != nil {
			return nil, err
		}
	}

	entries := make([]VLANEntry, 0, len(vlans))
	for _, vlan := range vlans {
		iface := "Vlan" + vlan.ID

		vrf, err := master.VRFFor(ctx, iface)
		if err != nil {
			return nil, err
		}
		addr, mask, err := master.SVIAddress(ctx, iface)
		if err != nil {
			return nil, err
		}

		entry := VLANEntry{VLANID: vlan.ID, Name: vlan.Name, VRF: vrf, Mask: mask}

		if vxlan {
			entry.VNI = vnis[vlan.ID]
			entry.MasterIP = addr
			entry.L3 = addr == ""
		} else {
			group, err := master.HSRP(ctx, iface)
			if err != nil && !errors.Is(err, util.ErrUnsupportedFeature) {
				return nil, err
			}
			if err == nil && group != nil && group.Active != "" {
				entry.MasterIP = group.Active
				entry.SlaveIP = group.Standby
				entry.VIP = group.VIP
			} else {
				entry.MasterIP = addr
				if slave != nil {
					slaveAddr, _, err := slave.SVIAddress(ctx, iface)
					if err != nil {
						return nil, err
					}
					entry.SlaveIP = slaveAddr
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
