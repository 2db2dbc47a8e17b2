package reconcile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lmops/lmctl/pkg/resources"
)

// Reference resolution helpers. Each takes an id-or-label pair the way the
// payload builders receive them and fails when nothing matches, since a
// payload with a missing relation would silently detach it server side.

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (e *Engine) collectorGroupID(ctx context.Context, id int, name *string) (int, error) {
	n := strVal(name)
	// A blank name addresses the implicit ungrouped collector group.
	if name != nil && strings.TrimSpace(n) == "" {
		n = "@default"
	}
	rec, err := e.resolver.Find(ctx, resources.CollectorGroup, id, "name", n)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, fmt.Errorf("collector group %s: %w", refLabel(id, n), ErrAbsent)
	}
	return rec.ID(), nil
}

func (e *Engine) collectorID(ctx context.Context, id int, desc *string) (int, error) {
	rec, err := e.resolver.Find(ctx, resources.Collector, id, "description", strVal(desc))
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, fmt.Errorf("collector %s: %w", refLabel(id, strVal(desc)), ErrAbsent)
	}
	return rec.ID(), nil
}

func (e *Engine) escalationChainID(ctx context.Context, id int, name *string) (int, error) {
	rec, err := e.resolver.Find(ctx, resources.EscalationChain, id, "name", strVal(name))
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, fmt.Errorf("escalation chain %s: %w", refLabel(id, strVal(name)), ErrAbsent)
	}
	return rec.ID(), nil
}

// deviceGroupID resolves an existing device group by id or full path. It
// never creates groups.
func (e *Engine) deviceGroupID(ctx context.Context, id int, fullPath *string) (int, error) {
	fp := strings.Trim(strings.TrimSpace(strVal(fullPath)), "/")
	rec, err := e.resolver.Find(ctx, resources.DeviceGroup, id, "fullPath", fp)
	if err != nil {
		return 0, err
	}
	if rec == nil {
		return 0, fmt.Errorf("device group %s: %w", refLabel(id, fp), ErrAbsent)
	}
	return rec.ID(), nil
}

// deviceGroupRef resolves one element of a device's group list: either a
// numeric group ID or a full path that is created when missing.
func (e *Engine) deviceGroupRef(ctx context.Context, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		return n, nil
	}
	path := strings.TrimRight(ref, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return e.resolver.EnsureGroupPath(ctx, path)
}

func refLabel(id int, label string) string {
	if id > 0 {
		return strconv.Itoa(id)
	}
	return strconv.Quote(label)
}
