package reconcile

import (
	"context"
	"fmt"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// lmotelAPIVersion is required by the endpoint for the OpenTelemetry
// collector subtype.
const lmotelAPIVersion = "4"

// CollectorSpec is the desired state of a collector registration,
// addressed by ID or description. Installation on the collector host is
// out of scope; add only registers the collector with the account.
type CollectorSpec struct {
	ID          int
	Description *string

	// Create-only relations.
	CollectorGroupID    int
	CollectorGroupName  *string
	DeviceGroupID       int
	DeviceGroupFullPath *string

	// Update-only settings. A literal 0 in EscalatingChainID or
	// BackupCollectorID clears the relation instead of pointing it
	// anywhere, so both are pointers.
	EscalatingChainID   *int
	EscalatingChainName *string
	BackupCollectorID   *int
	BackupCollectorDesc *string
	ResendInterval      *int
	Properties          map[string]any

	// LMOtel marks the OpenTelemetry collector subtype.
	LMOtel bool

	ForceManage bool
	OpType      types.OpType
	Downtime
}

func (s *CollectorSpec) Kind() resources.Kind { return resources.Collector }
func (s *CollectorSpec) forceManage() bool    { return s.ForceManage }
func (s *CollectorSpec) opType() types.OpType { return s.OpType }

func (s *CollectorSpec) apiVersion() string {
	if s.LMOtel {
		return lmotelAPIVersion
	}
	return ""
}

func (s *CollectorSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	return e.Resolver().Find(ctx, resources.Collector, s.ID, "description", strVal(s.Description))
}

func (s *CollectorSpec) ValidateAdd() error {
	if strVal(s.Description) == "" {
		return fmt.Errorf("adding a collector requires a description")
	}
	return nil
}

func (s *CollectorSpec) ValidateTarget() error {
	if s.ID <= 0 && s.Description == nil {
		return fmt.Errorf("addressing a collector requires an id or description")
	}
	return nil
}

func (s *CollectorSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	if existing == nil {
		return s.createPayload(ctx, e)
	}
	return s.updatePayload(ctx, e)
}

func (s *CollectorSpec) createPayload(ctx context.Context, e *Engine) (map[string]any, error) {
	data := map[string]any{}
	if d := strVal(s.Description); d != "" {
		data["description"] = d
	}
	if s.CollectorGroupID > 0 || s.CollectorGroupName != nil {
		id, err := e.collectorGroupID(ctx, s.CollectorGroupID, s.CollectorGroupName)
		if err != nil {
			return nil, err
		}
		data["collectorGroupId"] = id
	}
	if s.DeviceGroupID > 0 || s.DeviceGroupFullPath != nil {
		id, err := e.deviceGroupID(ctx, s.DeviceGroupID, s.DeviceGroupFullPath)
		if err != nil {
			return nil, err
		}
		data["specifiedCollectorDeviceGroupId"] = id
	}
	return data, nil
}

func (s *CollectorSpec) updatePayload(ctx context.Context, e *Engine) (map[string]any, error) {
	data := map[string]any{}
	if s.Description != nil {
		data["description"] = *s.Description
	}
	if s.CollectorGroupID > 0 || s.CollectorGroupName != nil {
		id, err := e.collectorGroupID(ctx, s.CollectorGroupID, s.CollectorGroupName)
		if err != nil {
			return nil, err
		}
		data["collectorGroupId"] = id
	}
	switch {
	case s.EscalatingChainID != nil && *s.EscalatingChainID == 0:
		data["escalatingChainId"] = 0
	case (s.EscalatingChainID != nil && *s.EscalatingChainID > 0) || s.EscalatingChainName != nil:
		var id int
		if s.EscalatingChainID != nil {
			id = *s.EscalatingChainID
		}
		resolved, err := e.escalationChainID(ctx, id, s.EscalatingChainName)
		if err != nil {
			return nil, err
		}
		data["escalatingChainId"] = resolved
	}
	switch {
	case s.BackupCollectorID != nil && *s.BackupCollectorID == 0:
		data["backupAgentId"] = 0
	case (s.BackupCollectorID != nil && *s.BackupCollectorID > 0) || s.BackupCollectorDesc != nil:
		var id int
		if s.BackupCollectorID != nil {
			id = *s.BackupCollectorID
		}
		resolved, err := e.collectorID(ctx, id, s.BackupCollectorDesc)
		if err != nil {
			return nil, err
		}
		data["backupAgentId"] = resolved
	}
	if s.ResendInterval != nil {
		data["resendIval"] = *s.ResendInterval
	}
	if s.Properties != nil {
		data["customProperties"] = resources.BuildProperties(s.Properties)
	}
	return data, nil
}

func (s *CollectorSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":          rec["id"],
		"description": rec["description"],
	}
}

func (s *CollectorSpec) ValidateSDT() error {
	if s.ID <= 0 && s.Description == nil {
		return fmt.Errorf("collector downtime requires an id or description")
	}
	return nil
}

func (s *CollectorSpec) SDTFields(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	return map[string]any{
		"type":        "CollectorSDT",
		"collectorId": existing.ID(),
	}, nil
}
