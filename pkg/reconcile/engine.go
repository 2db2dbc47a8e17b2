package reconcile

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lmops/lmctl/pkg/api"
	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/metrics"
	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/sdt"
	"github.com/lmops/lmctl/pkg/types"
)

// defaultSDTMinutes is the downtime duration when neither an end time nor
// a duration is given.
const defaultSDTMinutes = 30

var (
	// ErrExists is returned when add finds the resource already present
	// and crossover to update is disabled.
	ErrExists = errors.New("already exists")

	// ErrAbsent is returned when update, remove or sdt cannot find the
	// resource.
	ErrAbsent = errors.New("does not exist")
)

// Engine drives one reconcile action against one resource.
type Engine struct {
	client   *api.Client
	resolver *resources.Resolver
}

// NewEngine returns an Engine backed by the given client.
func NewEngine(c *api.Client) *Engine {
	return &Engine{client: c, resolver: resources.NewResolver(c)}
}

// Resolver exposes the engine's resolver for read-only lookups.
func (e *Engine) Resolver() *resources.Resolver {
	return e.resolver
}

// Apply reconciles the spec with the requested action and reports what
// happened. The sdt action requires a DowntimeSpec.
func (e *Engine) Apply(ctx context.Context, action types.Action, spec Spec) (*types.Result, error) {
	logger := log.WithResource(spec.Kind().Name, string(action))
	logger.Debug().Msg("starting reconcile")

	existing, lookupErr := spec.Lookup(ctx, e)
	if lookupErr != nil && errors.Is(lookupErr, api.ErrAuth) {
		return nil, lookupErr
	}

	res, err := e.dispatch(ctx, action, spec, existing, lookupErr)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.ReconcileActionsTotal.WithLabelValues(spec.Kind().Name, string(action), outcome).Inc()
	if err != nil {
		return nil, err
	}
	logger.Info().Bool("changed", res.Changed).Str("performed", res.ActionPerformed).Msg("reconcile finished")
	return res, nil
}

func (e *Engine) dispatch(ctx context.Context, action types.Action, spec Spec, existing types.Record, lookupErr error) (*types.Result, error) {
	switch action {
	case types.ActionAdd:
		return e.add(ctx, spec, existing, lookupErr)
	case types.ActionUpdate:
		return e.update(ctx, spec, existing, lookupErr)
	case types.ActionRemove:
		return e.remove(ctx, spec, existing, lookupErr)
	case types.ActionSDT:
		ds, ok := spec.(DowntimeSpec)
		if !ok {
			return nil, fmt.Errorf("%s does not support scheduled downtime", spec.Kind().Name)
		}
		return e.scheduleDowntime(ctx, ds, existing, lookupErr)
	default:
		return nil, fmt.Errorf("unexpected action %q", action)
	}
}

func (e *Engine) add(ctx context.Context, spec Spec, existing types.Record, lookupErr error) (*types.Result, error) {
	kind := spec.Kind()

	if existing != nil {
		if crossover(spec) {
			return e.update(ctx, spec, existing, nil)
		}
		return nil, fmt.Errorf("failed to add %s: %w", kind.Name, ErrExists)
	}

	if err := spec.ValidateAdd(); err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", kind.Name, err)
	}
	if lookupErr != nil {
		return nil, fmt.Errorf("failed to add %s: %w", kind.Name, lookupErr)
	}

	data, err := spec.Payload(ctx, e, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", kind.Name, err)
	}

	body, err := e.client.Do(ctx, api.Request{
		Method:   http.MethodPost,
		Path:     kind.Path,
		Body:     data,
		XVersion: mutateVersion(spec),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", kind.Name, err)
	}

	return &types.Result{
		Changed:         true,
		ActionPerformed: "add",
		Data:            spec.BasicInfo(body),
		AdditionalInfo:  fmt.Sprintf("%s added successfully", kind.Name),
	}, nil
}

func (e *Engine) update(ctx context.Context, spec Spec, existing types.Record, lookupErr error) (*types.Result, error) {
	kind := spec.Kind()

	if existing == nil {
		if err := spec.ValidateTarget(); err != nil {
			return nil, fmt.Errorf("failed to update %s: %w", kind.Name, err)
		}
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to update %s: %w", kind.Name, lookupErr)
		}
		if crossover(spec) {
			return e.add(ctx, spec, nil, nil)
		}
		return nil, fmt.Errorf("failed to update %s: %w", kind.Name, ErrAbsent)
	}

	data, err := spec.Payload(ctx, e, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", kind.Name, err)
	}

	var query url.Values
	if ot, ok := spec.(opTyped); ok && ot.opType() != "" {
		query = url.Values{"opType": {string(ot.opType())}}
	}

	seg := targetSegment(spec, existing)
	body, err := e.client.Do(ctx, api.Request{
		Method:     http.MethodPatch,
		Path:       kind.Path,
		PathSuffix: "/" + seg,
		Query:      query,
		Body:       data,
		XVersion:   mutateVersion(spec),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update %s %s: %w", kind.Name, seg, err)
	}

	return &types.Result{
		Changed:         true,
		ActionPerformed: "update",
		Data:            spec.BasicInfo(body),
		AdditionalInfo:  fmt.Sprintf("%s updated successfully", kind.Name),
	}, nil
}

func (e *Engine) remove(ctx context.Context, spec Spec, existing types.Record, lookupErr error) (*types.Result, error) {
	kind := spec.Kind()

	if existing == nil {
		if err := spec.ValidateTarget(); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", kind.Name, err)
		}
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", kind.Name, lookupErr)
		}
		return nil, fmt.Errorf("failed to remove %s: %w", kind.Name, ErrAbsent)
	}

	seg := targetSegment(spec, existing)
	_, err := e.client.Do(ctx, api.Request{
		Method:     http.MethodDelete,
		Path:       kind.Path,
		PathSuffix: "/" + seg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove %s %s: %w", kind.Name, seg, err)
	}

	return &types.Result{
		Changed:         true,
		ActionPerformed: "remove",
		Data:            spec.BasicInfo(existing),
		AdditionalInfo:  fmt.Sprintf("%s removed successfully", kind.Name),
	}, nil
}

func (e *Engine) scheduleDowntime(ctx context.Context, spec DowntimeSpec, existing types.Record, lookupErr error) (*types.Result, error) {
	kind := spec.Kind()

	if err := spec.ValidateSDT(); err != nil {
		return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, err)
	}
	if existing == nil {
		if lookupErr != nil {
			return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, lookupErr)
		}
		return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, ErrAbsent)
	}

	d := spec.downtime()
	duration := d.Duration
	if duration == 0 {
		duration = defaultSDTMinutes
	}
	iv, err := sdt.Compute(d.StartTime, d.EndTime, duration)
	if err != nil {
		return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, err)
	}

	data := map[string]any{
		"sdtType":       "oneTime",
		"startDateTime": iv.StartMillis,
		"endDateTime":   iv.EndMillis,
		"comment":       d.Comment,
	}
	extra, err := spec.SDTFields(ctx, e, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, err)
	}
	for k, v := range extra {
		data[k] = v
	}

	body, err := e.client.Do(ctx, api.Request{Method: http.MethodPost, Path: resources.SDTPath, Body: data})
	if err != nil {
		return nil, fmt.Errorf("failed to sdt %s: %w", kind.Name, err)
	}

	return &types.Result{
		Changed:         true,
		ActionPerformed: "sdt",
		Data:            sdtInfo(body),
		AdditionalInfo:  fmt.Sprintf("%s sdt successful", kind.Name),
	}, nil
}

// sdtInfo projects the fields callers care about from a downtime response.
func sdtInfo(rec types.Record) types.Record {
	return types.Record{
		"sdt_id":     rec["id"],
		"start_time": rec["startDateTimeOnLocal"],
		"end_time":   rec["endDateTimeOnLocal"],
		"duration":   rec["duration"],
	}
}

// targetSegment renders the path segment that addresses an existing
// record, honoring kinds keyed by a string identifier.
func targetSegment(spec Spec, rec types.Record) string {
	if sk, ok := spec.(stringKeyed); ok {
		return sk.recordKey(rec)
	}
	return strconv.Itoa(rec.ID())
}

func crossover(spec Spec) bool {
	fm, ok := spec.(forceManaged)
	return ok && fm.forceManage()
}

func mutateVersion(spec Spec) string {
	if v, ok := spec.(versioned); ok {
		return v.apiVersion()
	}
	return ""
}
