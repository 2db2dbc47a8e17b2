package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// CollectorGroupSpec is the desired state of a collector group, addressed
// by ID or name. The blank name aliases the implicit ungrouped group.
type CollectorGroupSpec struct {
	ID   int
	Name *string

	Description *string
	Properties  map[string]any
	// AutoBalance toggles Auto-Balanced Collector Group behavior.
	AutoBalance *bool
	// InstanceThreshold caps instances per collector when auto balanced.
	InstanceThreshold *int

	ForceManage bool
	OpType      types.OpType
}

func (s *CollectorGroupSpec) Kind() resources.Kind { return resources.CollectorGroup }
func (s *CollectorGroupSpec) forceManage() bool    { return s.ForceManage }
func (s *CollectorGroupSpec) opType() types.OpType { return s.OpType }

func (s *CollectorGroupSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	n := strVal(s.Name)
	if s.Name != nil && strings.TrimSpace(n) == "" {
		n = "@default"
	}
	return e.Resolver().Find(ctx, resources.CollectorGroup, s.ID, "name", n)
}

func (s *CollectorGroupSpec) ValidateAdd() error {
	if strVal(s.Name) == "" {
		return fmt.Errorf("adding a collector group requires a unique name")
	}
	return nil
}

func (s *CollectorGroupSpec) ValidateTarget() error {
	if s.ID <= 0 && s.Name == nil {
		return fmt.Errorf("addressing a collector group requires an id or name")
	}
	return nil
}

func (s *CollectorGroupSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.InstanceThreshold != nil {
		if *s.InstanceThreshold < 0 {
			return nil, fmt.Errorf("instance threshold cannot be negative")
		}
		data["autoBalanceInstanceCountThreshold"] = *s.InstanceThreshold
	}
	if n := strVal(s.Name); n != "" {
		data["name"] = strings.TrimSpace(n)
	}
	if s.Description != nil {
		data["description"] = *s.Description
	}
	if s.Properties != nil {
		data["customProperties"] = resources.BuildProperties(s.Properties)
	}
	if s.AutoBalance != nil {
		data["autoBalance"] = *s.AutoBalance
	}
	return data, nil
}

func (s *CollectorGroupSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":   rec["id"],
		"name": rec["name"],
	}
}
