package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmops/lmctl/pkg/api"
	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// DeviceSpec is the desired state of a monitored device. A device is
// addressed by ID, display name, or hostname, in that order.
type DeviceSpec struct {
	ID          int
	DisplayName *string
	Hostname    *string
	Link        *string
	// Groups lists the device's group memberships, each entry a numeric
	// group ID or a full path created on demand.
	Groups          []string
	Description     *string
	DisableAlerting *bool
	Properties      map[string]any

	// AutoBalance controls Auto-Balanced Collector Group membership.
	// Explicit false clears it; nil leaves the existing mode alone.
	AutoBalance        *bool
	CollectorGroupID   int
	CollectorGroupName *string
	CollectorID        int
	CollectorDesc      *string

	ForceManage bool
	OpType      types.OpType
	Downtime
}

func (s *DeviceSpec) Kind() resources.Kind { return resources.Device }
func (s *DeviceSpec) forceManage() bool    { return s.ForceManage }
func (s *DeviceSpec) opType() types.OpType { return s.OpType }

func (s *DeviceSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	var idErr error
	if s.ID > 0 {
		rec, err := e.Resolver().GetByID(ctx, resources.Device, s.ID)
		if rec != nil {
			return rec, nil
		}
		if errors.Is(err, api.ErrAuth) {
			return nil, err
		}
		idErr = err
	}

	// Display name and hostname go into one OR filter so the lowest id
	// wins when they match different devices.
	var parts []string
	if s.DisplayName != nil {
		parts = append(parts, fmt.Sprintf("displayName:%q", *s.DisplayName))
	}
	if s.Hostname != nil {
		parts = append(parts, fmt.Sprintf("name:%q", *s.Hostname))
	}
	if len(parts) == 0 {
		return nil, idErr
	}
	rec, err := e.Resolver().FindWhere(ctx, resources.Device, strings.Join(parts, "||"))
	if rec != nil {
		return rec, nil
	}
	// A conclusive miss by name supersedes an inconclusive id lookup.
	return nil, err
}

func (s *DeviceSpec) ValidateAdd() error {
	groupProvided := s.CollectorGroupID > 0 || s.CollectorGroupName != nil
	switch {
	case strVal(s.Hostname) == "" || strVal(s.DisplayName) == "":
		return fmt.Errorf("adding a device requires hostname and display name")
	case (s.AutoBalance == nil || !*s.AutoBalance) && s.CollectorID <= 0 && s.CollectorDesc == nil:
		return fmt.Errorf("adding a device requires a collector id or description")
	case s.AutoBalance != nil && *s.AutoBalance && !groupProvided:
		return fmt.Errorf("auto balancing a device requires a collector group id or name")
	}
	return s.validateGroups()
}

func (s *DeviceSpec) validateGroups() error {
	for _, g := range s.Groups {
		if n, err := strconv.Atoi(strings.TrimSpace(g)); err == nil {
			if n <= 0 {
				return fmt.Errorf("invalid group id %q", g)
			}
			continue
		}
		if err := resources.CheckGroupPath(g); err != nil {
			return err
		}
	}
	return nil
}

func (s *DeviceSpec) ValidateTarget() error {
	if s.ID <= 0 && s.DisplayName == nil && s.Hostname == nil {
		return fmt.Errorf("addressing a device requires an id, display name, or hostname")
	}
	return nil
}

func (s *DeviceSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.DisplayName != nil {
		data["displayName"] = strings.TrimSpace(*s.DisplayName)
	}
	if s.Hostname != nil {
		data["name"] = strings.TrimSpace(*s.Hostname)
	}
	if s.Link != nil {
		data["link"] = strings.TrimSpace(*s.Link)
	}
	if err := s.collectorFields(ctx, e, existing, data); err != nil {
		return nil, err
	}
	if s.Groups != nil {
		ids, err := s.groupIDList(ctx, e)
		if err != nil {
			return nil, err
		}
		data["hostGroupIds"] = ids
	}
	if s.Description != nil {
		data["description"] = *s.Description
	}
	if s.DisableAlerting != nil {
		data["disableAlerting"] = *s.DisableAlerting
	}
	if s.Properties != nil {
		data["customProperties"] = resources.BuildProperties(s.Properties)
	}
	return data, nil
}

// collectorFields wires the device to a collector or an Auto-Balanced
// Collector Group. Precedence: an explicit disable wins, then an explicit
// group reference, then inheriting the existing record's preferred group
// when auto balancing is being switched on.
func (s *DeviceSpec) collectorFields(ctx context.Context, e *Engine, existing types.Record, data map[string]any) error {
	groupProvided := s.CollectorGroupID > 0 || s.CollectorGroupName != nil

	switch {
	case s.AutoBalance != nil && !*s.AutoBalance:
		data["autoBalancedCollectorGroupId"] = 0
	case s.AutoBalance != nil && *s.AutoBalance:
		switch {
		case groupProvided:
			id, err := e.collectorGroupID(ctx, s.CollectorGroupID, s.CollectorGroupName)
			if err != nil {
				return err
			}
			data["autoBalancedCollectorGroupId"] = id
		case existing != nil && existing.Int("preferredCollectorGroupId") > 0:
			data["autoBalancedCollectorGroupId"] = existing.Int("preferredCollectorGroupId")
		}
	default:
		// Mode untouched: refresh the group reference only when the device
		// is already auto balanced and a new group was named.
		if existing != nil && existing.Int("autoBalancedCollectorGroupId") > 0 && groupProvided {
			id, err := e.collectorGroupID(ctx, s.CollectorGroupID, s.CollectorGroupName)
			if err != nil {
				return err
			}
			data["autoBalancedCollectorGroupId"] = id
		}
	}

	if s.AutoBalance == nil || !*s.AutoBalance {
		if s.CollectorID > 0 || s.CollectorDesc != nil {
			id, err := e.collectorID(ctx, s.CollectorID, s.CollectorDesc)
			if err != nil {
				return err
			}
			data["preferredCollectorId"] = id
		}
	}
	return nil
}

// groupIDList renders the membership list as the comma-joined ID string
// the endpoint expects.
func (s *DeviceSpec) groupIDList(ctx context.Context, e *Engine) (string, error) {
	ids := make([]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		id, err := e.deviceGroupRef(ctx, g)
		if err != nil {
			return "", err
		}
		ids = append(ids, strconv.Itoa(id))
	}
	return strings.Join(ids, ","), nil
}

func (s *DeviceSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":           rec["id"],
		"hostname":     rec["name"],
		"display_name": rec["displayName"],
	}
}

func (s *DeviceSpec) ValidateSDT() error {
	if s.ID <= 0 && s.DisplayName == nil && s.Hostname == nil {
		return fmt.Errorf("device downtime requires an id, display name, or hostname")
	}
	return nil
}

func (s *DeviceSpec) SDTFields(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	return map[string]any{
		"type":     "ResourceSDT",
		"deviceId": existing.ID(),
	}, nil
}
