package reconcile

import (
	"context"
	"fmt"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// Recipient is one alert destination inside an escalation stage. Three
// shapes are accepted. Name "arbitrary-email" with Address sends straight
// to that address. Name "group" with GroupName routes to a recipient
// group. Any other Name is an integration looked up by method and user.
type Recipient struct {
	Name      string `json:"name"`
	User      string `json:"user"`
	Address   string `json:"address"`
	GroupName string `json:"group-name"`
}

const (
	arbitraryRecipient = "arbitrary-email"
	groupRecipient     = "group"
)

// EscalationChainSpec is the desired state of an escalation chain.
type EscalationChainSpec struct {
	ID   int
	Name *string

	Description      *string
	EnableThrottling *bool
	RateLimitAlerts  *int
	RateLimitPeriod  *int

	// Destinations is the ordered list of stages, each a list of
	// recipients notified together before escalating to the next stage.
	Destinations [][]Recipient
	// CCDestinations receive every notification sent to any stage.
	CCDestinations []Recipient

	ForceManage bool
}

func (s *EscalationChainSpec) Kind() resources.Kind { return resources.EscalationChain }
func (s *EscalationChainSpec) forceManage() bool    { return s.ForceManage }

func (s *EscalationChainSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	return e.Resolver().Find(ctx, resources.EscalationChain, s.ID, "name", strVal(s.Name))
}

func (s *EscalationChainSpec) ValidateAdd() error {
	if strVal(s.Name) == "" {
		return fmt.Errorf("adding an escalation chain requires a unique name")
	}
	if s.EnableThrottling == nil {
		return fmt.Errorf("adding an escalation chain requires the throttling flag")
	}
	if err := s.validateThrottling(); err != nil {
		return err
	}
	if len(s.Destinations) == 0 {
		return fmt.Errorf("adding an escalation chain requires destinations")
	}
	return nil
}

func (s *EscalationChainSpec) ValidateTarget() error {
	if s.ID <= 0 && s.Name == nil {
		return fmt.Errorf("addressing an escalation chain requires an id or name")
	}
	return s.validateThrottling()
}

func (s *EscalationChainSpec) validateThrottling() error {
	if s.EnableThrottling == nil || !*s.EnableThrottling {
		return nil
	}
	if s.RateLimitAlerts == nil || *s.RateLimitAlerts <= 0 {
		return fmt.Errorf("rate limit alerts is required when throttling is enabled")
	}
	if s.RateLimitPeriod == nil || *s.RateLimitPeriod <= 0 {
		return fmt.Errorf("rate limit period is required when throttling is enabled")
	}
	return nil
}

func (s *EscalationChainSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.Name != nil {
		data["name"] = *s.Name
	}
	if s.EnableThrottling != nil {
		data["enableThrottling"] = *s.EnableThrottling
	}
	if s.RateLimitAlerts != nil {
		data["throttlingAlerts"] = *s.RateLimitAlerts
	}
	if s.RateLimitPeriod != nil {
		data["throttlingPeriod"] = *s.RateLimitPeriod
	}
	if s.CCDestinations != nil {
		cc, err := resolveRecipients(ctx, e, s.CCDestinations)
		if err != nil {
			return nil, err
		}
		data["ccDestinations"] = cc
	}
	if s.Destinations != nil {
		stages := make([][]map[string]any, 0, len(s.Destinations))
		for _, stage := range s.Destinations {
			recipients, err := resolveRecipients(ctx, e, stage)
			if err != nil {
				return nil, err
			}
			stages = append(stages, recipients)
		}
		data["destinations"] = []map[string]any{{"type": "single", "stages": stages}}
	}
	if s.Description != nil {
		data["description"] = *s.Description
	}
	return data, nil
}

func resolveRecipients(ctx context.Context, e *Engine, rs []Recipient) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rs))
	for _, r := range rs {
		rec, err := resolveRecipient(ctx, e, r)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// resolveRecipient turns a caller-facing recipient into the wire shape the
// chain endpoints accept. Integration and group recipients are looked up in
// the account so their full record rides along in the payload.
func resolveRecipient(ctx context.Context, e *Engine, r Recipient) (map[string]any, error) {
	switch r.Name {
	case arbitraryRecipient:
		if r.Address == "" {
			return nil, fmt.Errorf("address is required for an arbitrary-email recipient")
		}
		return map[string]any{
			"type":    "ARBITRARY",
			"method":  "email",
			"addr":    r.Address,
			"contact": "",
		}, nil

	case groupRecipient:
		if r.GroupName == "" {
			return nil, fmt.Errorf("group-name is required for a group recipient")
		}
		return lookupRecipient(ctx, e, fmt.Sprintf("addr:%q", r.GroupName))

	default:
		if r.Name == "" || r.User == "" {
			return nil, fmt.Errorf("name and user are required for a recipient")
		}
		return lookupRecipient(ctx, e, fmt.Sprintf("method:%q,addr:%q", r.Name, r.User))
	}
}

func lookupRecipient(ctx context.Context, e *Engine, filter string) (map[string]any, error) {
	rec, err := e.Resolver().FindWhere(ctx, resources.Recipient, filter)
	if err != nil {
		return nil, fmt.Errorf("looking up recipient %s: %w", filter, err)
	}
	if rec == nil {
		return nil, fmt.Errorf("recipient %s: %w", filter, ErrAbsent)
	}
	rec["contact"] = ""
	return rec, nil
}

func (s *EscalationChainSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":   rec["id"],
		"name": rec["name"],
	}
}
