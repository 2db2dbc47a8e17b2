package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// DeviceGroupSpec is the desired state of a device group, addressed by ID
// or full path.
type DeviceGroupSpec struct {
	ID       int
	FullPath *string

	CollectorID     int
	CollectorDesc   *string
	Description     *string
	DisableAlerting *bool
	Properties      map[string]any

	// DatasourceID and DatasourceName narrow a group downtime to one
	// datasource; unset means every datasource under the group.
	DatasourceID   int
	DatasourceName *string

	ForceManage bool
	OpType      types.OpType
	Downtime
}

func (s *DeviceGroupSpec) Kind() resources.Kind { return resources.DeviceGroup }
func (s *DeviceGroupSpec) forceManage() bool    { return s.ForceManage }
func (s *DeviceGroupSpec) opType() types.OpType { return s.OpType }

func (s *DeviceGroupSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	fp := strings.Trim(strings.TrimSpace(strVal(s.FullPath)), "/")
	return e.Resolver().Find(ctx, resources.DeviceGroup, s.ID, "fullPath", fp)
}

func (s *DeviceGroupSpec) ValidateAdd() error {
	fp := strVal(s.FullPath)
	if fp == "" || fp == "/" {
		return fmt.Errorf("adding a device group requires a unique full path")
	}
	return resources.CheckGroupPath(fp)
}

func (s *DeviceGroupSpec) ValidateTarget() error {
	if s.ID <= 0 && s.FullPath == nil {
		return fmt.Errorf("addressing a device group requires an id or full path")
	}
	return nil
}

func (s *DeviceGroupSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.CollectorID > 0 || s.CollectorDesc != nil {
		id, err := e.collectorID(ctx, s.CollectorID, s.CollectorDesc)
		if err != nil {
			return nil, err
		}
		data["defaultCollectorId"] = id
	}
	if fp := strVal(s.FullPath); fp != "" && fp != "/" {
		parent, name := normalizeSplit(fp)
		parentID, err := e.Resolver().EnsureGroupPath(ctx, parent)
		if err != nil {
			return nil, err
		}
		data["name"] = strings.TrimSpace(name)
		data["parentId"] = parentID
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

// normalizeSplit forces a leading slash, drops trailing ones, and splits
// off the leaf name.
func normalizeSplit(fp string) (parent, name string) {
	fp = strings.TrimRight(fp, "/")
	if !strings.HasPrefix(fp, "/") {
		fp = "/" + fp
	}
	idx := strings.LastIndex(fp, "/")
	return fp[:idx], fp[idx+1:]
}

func (s *DeviceGroupSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":        rec["id"],
		"name":      rec["name"],
		"full_path": rec["fullPath"],
	}
}

func (s *DeviceGroupSpec) ValidateSDT() error {
	if s.ID <= 0 && s.FullPath == nil {
		return fmt.Errorf("device group downtime requires an id or full path")
	}
	return nil
}

func (s *DeviceGroupSpec) SDTFields(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	fields := map[string]any{
		"type":          "ResourceGroupSDT",
		"deviceGroupId": existing.ID(),
	}
	if s.DatasourceID > 0 {
		fields["dataSourceId"] = s.DatasourceID
	}
	if ds := strVal(s.DatasourceName); ds != "" {
		fields["dataSourceName"] = strings.TrimSpace(ds)
	}
	return fields, nil
}
