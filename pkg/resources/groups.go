package resources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/lmops/lmctl/pkg/api"
	"github.com/lmops/lmctl/pkg/log"
	"github.com/lmops/lmctl/pkg/types"
)

// rootGroupID is the implicit ID of the top-level device group "/".
const rootGroupID = 1

// CheckGroupPath validates a device group full path. Paths must not
// contain empty segments or whitespace around the separators.
func CheckGroupPath(fullPath string) error {
	p := strings.TrimSpace(fullPath)
	if strings.Contains(p, " /") || strings.Contains(p, "/ ") || strings.Contains(p, "//") {
		return fmt.Errorf("invalid group path %q", fullPath)
	}
	return nil
}

// GroupByFullPath looks up a device group by its full path, nil when the
// path does not exist.
func (r *Resolver) GroupByFullPath(ctx context.Context, fullPath string) (types.Record, error) {
	fp := strings.Trim(strings.TrimSpace(fullPath), "/")
	return r.FindFirst(ctx, DeviceGroup, "fullPath", fp)
}

// EnsureGroupPath returns the ID of the device group at fullPath, creating
// the group and any missing ancestors. The root path resolves to the
// implicit group 1 without a lookup.
func (r *Resolver) EnsureGroupPath(ctx context.Context, fullPath string) (int, error) {
	fp := strings.TrimSpace(fullPath)
	if fp == "" || fp == "/" {
		return rootGroupID, nil
	}

	grp, err := r.GroupByFullPath(ctx, fp)
	if err != nil {
		return 0, err
	}
	if grp != nil {
		return grp.ID(), nil
	}

	parentPath, name := splitGroupPath(fp)
	parentID := rootGroupID
	if parentPath != "" {
		parentID, err = r.EnsureGroupPath(ctx, parentPath)
		if err != nil {
			return 0, err
		}
	}

	logger := log.WithComponent("resources")
	logger.Info().
		Str("path", fp).
		Int("parent_id", parentID).
		Msg("creating device group")
	body, err := r.client.Do(ctx, api.Request{
		Method: http.MethodPost,
		Path:   DeviceGroup.Path,
		Body: map[string]any{
			"name":     strings.TrimSpace(name),
			"parentId": parentID,
		},
	})
	if err != nil {
		return 0, fmt.Errorf("creating device group %q: %w", fp, err)
	}
	return body.ID(), nil
}

// splitGroupPath splits "/a/b/c" into parent "/a/b" and leaf "c".
func splitGroupPath(fp string) (parent, name string) {
	idx := strings.LastIndex(fp, "/")
	if idx < 0 {
		return "", fp
	}
	return fp[:idx], fp[idx+1:]
}
