package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/sdt"
	"github.com/lmops/lmctl/pkg/types"
)

// Ops note scope kinds accepted by ScopeType.
const (
	ScopeDevice      = "device"
	ScopeDeviceGroup = "deviceGroup"
	ScopeWebsite     = "website"
)

// OpsNoteSpec is the desired state of an ops note. Note identifiers are
// opaque strings assigned by the server, so updates and removals always
// address an existing id.
type OpsNoteSpec struct {
	ID   string
	Note *string

	Tags []string
	// ScopeType picks the shape of every entry in Scopes. Each scope is a
	// device id, device group id or website id depending on it.
	ScopeType string
	Scopes    []string

	// NoteTime is the wall-clock stamp the note is filed under, in the
	// pkg/sdt grammar. Empty means now.
	NoteTime string

	ForceManage bool
}

func (s *OpsNoteSpec) Kind() resources.Kind { return resources.OpsNote }
func (s *OpsNoteSpec) forceManage() bool    { return s.ForceManage }

func (s *OpsNoteSpec) recordKey(rec types.Record) string { return rec.String("id") }

func (s *OpsNoteSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	if s.ID == "" {
		return nil, nil
	}
	return e.Resolver().GetByKey(ctx, resources.OpsNote, s.ID)
}

func (s *OpsNoteSpec) ValidateAdd() error {
	if strVal(s.Note) == "" {
		return fmt.Errorf("adding an ops note requires a note")
	}
	return nil
}

func (s *OpsNoteSpec) ValidateTarget() error {
	if s.ID == "" {
		return fmt.Errorf("addressing an ops note requires an existing id")
	}
	return nil
}

func (s *OpsNoteSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{}
	if s.Note != nil {
		data["note"] = *s.Note
	}
	if s.Tags != nil {
		tags := make([]map[string]any, 0, len(s.Tags))
		for _, t := range s.Tags {
			tags = append(tags, map[string]any{"name": strings.TrimSpace(t)})
		}
		data["tags"] = tags
	}
	if s.Scopes != nil {
		scopes, err := s.buildScopes()
		if err != nil {
			return nil, err
		}
		data["scopes"] = scopes
	}
	when, err := sdt.NoteTime(s.NoteTime)
	if err != nil {
		return nil, err
	}
	data["happenedOnInSec"] = when
	return data, nil
}

func (s *OpsNoteSpec) buildScopes() ([]map[string]any, error) {
	scopes := make([]map[string]any, 0, len(s.Scopes))
	for _, raw := range s.Scopes {
		id := strings.TrimSpace(raw)
		switch s.ScopeType {
		case ScopeDevice:
			scopes = append(scopes, map[string]any{"type": "device", "groupId": "0", "deviceId": id})
		case ScopeDeviceGroup:
			scopes = append(scopes, map[string]any{"type": "deviceGroup", "groupId": id})
		case ScopeWebsite:
			scopes = append(scopes, map[string]any{"type": "website", "groupId": "0", "websiteId": id})
		default:
			return nil, fmt.Errorf("unknown scope type %q", s.ScopeType)
		}
	}
	return scopes, nil
}

func (s *OpsNoteSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":   rec["id"],
		"note": rec["note"],
	}
}
