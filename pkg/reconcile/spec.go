package reconcile

import (
	"context"

	"github.com/lmops/lmctl/pkg/resources"
	"github.com/lmops/lmctl/pkg/types"
)

// Spec is the desired state of one resource. A spec carries the caller's
// field values, knows how to find the record it refers to, and builds the
// partial payload sent on create or update. Optional fields are pointers
// so an unset field stays out of the payload entirely.
type Spec interface {
	Kind() resources.Kind

	// Lookup returns the existing record, nil when it does not exist. A
	// non-nil error with a nil record means the lookup was inconclusive.
	Lookup(ctx context.Context, e *Engine) (types.Record, error)

	// ValidateAdd checks the fields required to create the resource.
	ValidateAdd() error

	// ValidateTarget checks that the spec can address an existing record.
	ValidateTarget() error

	// Payload builds the request body. existing is nil on create; update
	// payloads may consult it.
	Payload(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error)

	// BasicInfo projects the few identifying fields of a record into the
	// result, keyed the way callers named them.
	BasicInfo(rec types.Record) types.Record
}

// forceManaged is implemented by specs whose add and update actions cross
// over when the record's existence disagrees with the action.
type forceManaged interface {
	forceManage() bool
}

// opTyped is implemented by specs whose update passes a property merge
// mode through to the endpoint.
type opTyped interface {
	opType() types.OpType
}

// versioned overrides the X-Version header on mutating calls.
type versioned interface {
	apiVersion() string
}

// stringKeyed is implemented by specs whose records are addressed by a
// server-assigned string identifier instead of a numeric id.
type stringKeyed interface {
	recordKey(rec types.Record) string
}

// Downtime carries the shared scheduled-downtime window fields. Specs that
// support the sdt action embed it.
type Downtime struct {
	// StartTime and EndTime are wall-clock stamps in the pkg/sdt grammar.
	// An empty StartTime means now; a set EndTime overrides Duration.
	StartTime string
	EndTime   string
	// Duration is in minutes, defaulted when zero.
	Duration int
	Comment  string
}

func (d *Downtime) downtime() *Downtime { return d }

// DowntimeSpec is a Spec whose kind supports scheduled downtime.
type DowntimeSpec interface {
	Spec

	// ValidateSDT checks the fields required to address the sdt target.
	ValidateSDT() error

	// SDTFields returns the type discriminator and target reference merged
	// into the common downtime payload. existing is the resolved record.
	SDTFields(ctx context.Context, e *Engine, existing types.Record) (map[string]any, error)

	downtime() *Downtime
}
