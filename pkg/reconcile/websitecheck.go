package reconcile

import (
	"context"
	"fmt"
	"strings"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// WebsiteCheckSpec schedules downtime for a website check or for one of
// its checkpoint locations. Checks themselves are provisioned elsewhere,
// so sdt is the only action the spec supports.
type WebsiteCheckSpec struct {
	ID   int
	Name string

	// CheckpointID or CheckpointName narrows the downtime to a single
	// checkpoint location of the check. Both empty means the whole check.
	CheckpointID   int
	CheckpointName string

	Downtime
}

func (s *WebsiteCheckSpec) Kind() resources.Kind { return resources.WebsiteCheck }

func (s *WebsiteCheckSpec) Lookup(ctx context.Context, e *Engine) (types.Record, error) {
	return e.Resolver().Find(ctx, resources.WebsiteCheck, s.ID, "name", strings.TrimSpace(s.Name))
}

func (s *WebsiteCheckSpec) ValidateAdd() error {
	return fmt.Errorf("website checks only support scheduled downtime")
}

func (s *WebsiteCheckSpec) ValidateTarget() error {
	return fmt.Errorf("website checks only support scheduled downtime")
}

func (s *WebsiteCheckSpec) Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	return nil, fmt.Errorf("website checks only support scheduled downtime")
}

func (s *WebsiteCheckSpec) BasicInfo(rec types.Record) types.Record {
	return types.Record{
		"id":   rec["id"],
		"name": rec["name"],
	}
}

func (s *WebsiteCheckSpec) ValidateSDT() error {
	if s.ID <= 0 && strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("scheduling website check downtime requires a website check id or name")
	}
	return nil
}

func (s *WebsiteCheckSpec) SDTFields(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error) {
	data := map[string]any{"type": "WebsiteSDT"}
	if s.ID > 0 {
		data["websiteId"] = s.ID
	} else {
		data["websiteName"] = strings.TrimSpace(s.Name)
	}

	if s.CheckpointID > 0 || s.CheckpointName != "" {
		id, err := s.checkpointID(existing)
		if err != nil {
			return nil, err
		}
		data["type"] = "WebsiteCheckpointSDT"
		data["checkpointId"] = id
	}
	return data, nil
}

// checkpointID matches the requested checkpoint against the check's
// checkpoint list, by id first and then by location name.
func (s *WebsiteCheckSpec) checkpointID(existing types.Record) (int, error) {
	checkpoints := existing.Slice("checkpoints")
	available := make([]string, 0, len(checkpoints))
	for _, cp := range checkpoints {
		available = append(available, fmt.Sprintf("%d (%s)", cp.Int("id"), cp.String("geoInfo")))
	}

	if s.CheckpointID > 0 {
		for _, cp := range checkpoints {
			if cp.Int("id") == s.CheckpointID {
				return s.CheckpointID, nil
			}
		}
		return 0, fmt.Errorf("no checkpoint with id %d, available checkpoints: %s",
			s.CheckpointID, strings.Join(available, ", "))
	}

	for _, cp := range checkpoints {
		if cp.String("geoInfo") == s.CheckpointName {
			return cp.Int("id"), nil
		}
	}
	return 0, fmt.Errorf("no checkpoint named %q, available checkpoints: %s",
		s.CheckpointName, strings.Join(available, ", "))
}
