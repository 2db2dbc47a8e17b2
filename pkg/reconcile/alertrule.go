package reconcile

import (
	"context"
	"fmt"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// AlertRuleSpec is the desired state of an alert rule. Group, device,
// datasource and datapoint selectors are glob patterns passed through to
// the endpoint untouched.
type AlertRuleSpec struct {
	ID   int
	Name *string

	Priority *int
	// Level is the minimum severity the rule matches, one of the server's
	// levelStr values such as "All", "Warn", "Error" or "Critical".
	Level *string

	Datapoint  *string
	Datasource *string
	Instance   *string
	Groups     []string
	Devices    []string

	SuppressClear  *bool
	SuppressAckSDT *bool

	EscalationChainID  *int
	EscalationInterval *int

	// Properties narrows matching to resources carrying these property
	// values.
	Properties map[string]any

	ForceManage bool
}

func (s *AlertRuleSpec) Kind() resources.Kind { return resources.AlertRule }
func (s *AlertRuleSpec) forceManage() bool    { return s.ForceManage }

func (s *AlertRuleSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	return e.Resolver().Find(ctx, resources.AlertRule, s.ID, "name", strVal(s.Name))
}

func (s *AlertRuleSpec) ValidateAdd() error {
	if strVal(s.Name) == "" {
		return fmt.Errorf("adding an alert rule requires a unique name")
	}
	if s.Priority == nil || *s.Priority <= 0 {
		return fmt.Errorf("adding an alert rule requires a priority")
	}
	if s.EscalationInterval == nil || *s.EscalationInterval <= 0 {
		return fmt.Errorf("adding an alert rule requires an escalation interval")
	}
	if s.EscalationChainID == nil || *s.EscalationChainID <= 0 {
		return fmt.Errorf("adding an alert rule requires an escalation chain id")
	}
	return nil
}

func (s *AlertRuleSpec) ValidateTarget() error {
	if s.ID <= 0 && s.Name == nil {
		return fmt.Errorf("addressing an alert rule requires an id or name")
	}
	return nil
}

func (s *AlertRuleSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.Name != nil {
		data["name"] = *s.Name
	}
	if s.Priority != nil {
		data["priority"] = *s.Priority
	}
	if s.Level != nil {
		data["levelStr"] = *s.Level
	}
	if s.Datapoint != nil {
		data["datapoint"] = *s.Datapoint
	}
	if s.Datasource != nil {
		data["datasource"] = *s.Datasource
	}
	if s.Instance != nil {
		data["instance"] = *s.Instance
	}
	if s.Groups != nil {
		data["deviceGroups"] = s.Groups
	}
	if s.Devices != nil {
		data["devices"] = s.Devices
	}
	if s.SuppressClear != nil {
		data["suppressAlertClear"] = *s.SuppressClear
	}
	if s.SuppressAckSDT != nil {
		data["suppressAlertAckSdt"] = *s.SuppressAckSDT
	}
	if s.EscalationChainID != nil {
		data["escalatingChainId"] = *s.EscalationChainID
	}
	if s.EscalationInterval != nil {
		data["escalationInterval"] = *s.EscalationInterval
	}
	if s.Properties != nil {
		data["resourceProperties"] = resources.BuildProperties(s.Properties)
	}
	return data, nil
}

func (s *AlertRuleSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":   rec["id"],
		"name": rec["name"],
	}
}
