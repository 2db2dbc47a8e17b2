package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/metrics"
	"github.com/lmops/lmctl/pkg/types"
)

const (
	// DefaultPageSize is used when a caller does not request a size.
	DefaultPageSize = 250

	// maxPageSize is the largest page the API accepts.
	maxPageSize = 1000

	// maxPageIterations caps runaway pagination loops. Hitting the cap
	// returns the partial result rather than an error.
	maxPageIterations = 1000
)

// FetchAll retrieves every record from a list endpoint, following the
// offset/size pagination contract until the reported total is reached. Any
// failed page aborts the whole fetch.
func (c *Client) FetchAll(ctx context.Context, path string, query url.Values, size int) ([]types.Record, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	var items []types.Record
	total := -1

	for i := 0; i < maxPageIterations; i++ {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("offset", strconv.Itoa(len(items)))
		q.Set("size", strconv.Itoa(size))

		body, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: q})
		if err != nil {
			return nil, err
		}
		metrics.PaginationPagesTotal.Inc()

		page := body.Slice("items")
		if total < 0 {
			// The total from the first page governs termination; later
			// pages can report a shifted total while records churn.
			total = body.Int("total")
		}
		items = append(items, page...)

		if len(page) == 0 || len(items) >= total {
			return items, nil
		}
	}

	metrics.PaginationTruncatedTotal.Inc()
	logger := log.WithComponent("api")
	logger.Warn().
		Str("path", path).
		Int("fetched", len(items)).
		Int("total", total).
		Msg("pagination stopped at iteration cap, returning partial result")
	return items, nil
}
