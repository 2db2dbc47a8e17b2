package resources

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lmops/lmctl/pkg/types"
)

// BuildProperties converts a free-form property map into the name/value
// list the API expects. List values join on commas, empty and false-ish
// values become "", and entries are emitted in key order so payloads are
// stable across runs.
func BuildProperties(props map[string]any) []types.Property {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]types.Property, 0, len(keys))
	for _, k := range keys {
		out = append(out, types.Property{Name: k, Value: propertyValue(props[k])})
	}
	return out
}

func propertyValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		if !t {
			return ""
		}
		return "true"
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = propertyValue(e)
		}
		return strings.Join(parts, ",")
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
