package types

import (
	"encoding/json"
	"strconv"
)

// Credential holds the API credentials for a LogicMonitor account.
type Credential struct {
	// Company is the account name, i.e. the subdomain of the portal URL.
	Company string `yaml:"company" json:"company"`
	// AccessID identifies the API token.
	AccessID string `yaml:"access_id" json:"access_id"`
	// AccessKey is the secret used to sign requests. Never logged.
	AccessKey string `yaml:"access_key" json:"access_key"`
}

// Action is a reconcile operation requested by the caller.
type Action string

const (
	ActionAdd    Action = "add"
	ActionUpdate Action = "update"
	ActionRemove Action = "remove"
	ActionSDT    Action = "sdt"
)

// OpType controls how custom properties are merged on update.
type OpType string

const (
	// OpTypeRefresh replaces the full property set.
	OpTypeRefresh OpType = "refresh"
	// OpTypeReplace updates or appends the given properties.
	OpTypeReplace OpType = "replace"
	// OpTypeAdd appends only properties not already present.
	OpTypeAdd OpType = "add"
)

// Record is a decoded JSON object returned by the API. Numeric values
// arrive as json float64s; the accessors below normalize the common cases.
type Record map[string]any

// Int returns the named field as an int, or 0 if absent or non-numeric.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		n, _ := v.Int64()
		return int(n)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// String returns the named field as a string, or "" if absent.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// ID returns the record's numeric id field.
func (r Record) ID() int {
	return r.Int("id")
}

// Slice returns the named field as a list of records.
func (r Record) Slice(key string) []Record {
	raw, ok := r[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Record, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, Record(m))
		}
	}
	return out
}

// Result is the outcome of a reconcile action, shaped for JSON output.
type Result struct {
	Changed         bool   `json:"changed"`
	ActionPerformed string `json:"action_performed"`
	Data            Record `json:"data,omitempty"`
	AdditionalInfo  string `json:"additional_info,omitempty"`
}

// Property is a single custom property on a monitored resource.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
