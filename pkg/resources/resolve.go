package resources

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
	"github.com/lmops/lmctl/pkg/types"
)

// Resolver locates existing records by numeric ID or by a filtered field
// match. Not-found responses are normalized to a nil record so callers can
// branch on existence without parsing server wording.
type Resolver struct {
	client *api.Client
}

// NewResolver returns a Resolver backed by the given client.
func NewResolver(c *api.Client) *Resolver {
	return &Resolver{client: c}
}

// GetByID fetches one record by numeric ID. A not-found response for the
// kind returns (nil, nil); authentication failures and every other error
// are returned as-is.
func (r *Resolver) GetByID(ctx context.Context, kind Kind, id int) (types.Record, error) {
	return r.get(ctx, kind, strconv.Itoa(id))
}

// GetByKey is GetByID for endpoints whose identifiers are not numeric.
func (r *Resolver) GetByKey(ctx context.Context, kind Kind, key string) (types.Record, error) {
	return r.get(ctx, kind, key)
}

func (r *Resolver) get(ctx context.Context, kind Kind, seg string) (types.Record, error) {
	body, err := r.client.Do(ctx, api.Request{
		Method:     http.MethodGet,
		Path:       kind.Path,
		PathSuffix: "/" + seg,
	})
	switch {
	case err == nil:
		metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "hit").Inc()
		return body, nil
	case errors.Is(err, api.ErrAuth):
		return nil, err
	case kind.IsNotFound(err):
		metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "miss").Inc()
		return nil, nil
	default:
		metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "error").Inc()
		return nil, fmt.Errorf("looking up %s %s: %w", kind.Name, seg, err)
	}
}

// FindFirst queries the kind's list endpoint with an exact field filter and
// returns the first match, or nil when nothing matches.
func (r *Resolver) FindFirst(ctx context.Context, kind Kind, field, value string) (types.Record, error) {
	return r.FindWhere(ctx, kind, fmt.Sprintf("%s:%q", field, value))
}

// FindWhere is FindFirst with a caller-built filter expression, for matches
// spanning more than one field.
func (r *Resolver) FindWhere(ctx context.Context, kind Kind, filter string) (types.Record, error) {
	q := url.Values{
		"filter": {filter},
		"sort":   {"id"},
	}
	body, err := r.client.Do(ctx, api.Request{Method: http.MethodGet, Path: kind.Path, Query: q})
	if err != nil {
		metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "error").Inc()
		return nil, fmt.Errorf("filtering %s by %s: %w", kind.Name, filter, err)
	}

	if body.Int("total") > 0 {
		if items := body.Slice("items"); len(items) > 0 {
			metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "hit").Inc()
			return items[0], nil
		}
	}
	metrics.ResolverLookupsTotal.WithLabelValues(kind.Name, "miss").Inc()
	return nil, nil
}

// Find resolves a record from whichever of id and value the caller
// supplied. The ID lookup runs first; when a field value is also given,
// its outcome supersedes an inconclusive ID lookup, so a stale ID with a
// valid name still resolves. Authentication failures always abort.
func (r *Resolver) Find(ctx context.Context, kind Kind, id int, field, value string) (types.Record, error) {
	var idErr error
	if id > 0 {
		rec, err := r.GetByID(ctx, kind, id)
		if rec != nil {
			return rec, nil
		}
		if errors.Is(err, api.ErrAuth) {
			return nil, err
		}
		idErr = err
	}

	if value == "" {
		return nil, idErr
	}
	if idErr != nil {
		logger := log.WithComponent("resources")
		logger.Debug().
			Str("kind", kind.Name).
			Int("id", id).
			Err(idErr).
			Msg("id lookup inconclusive, falling back to field match")
	}
	return r.FindFirst(ctx, kind, field, value)
}
