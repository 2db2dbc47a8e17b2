/*
Package reconcile converges monitoring resources toward a declared state.

Callers describe one resource with a Spec and ask the Engine to apply one
of four actions: add, update, remove or sdt. The engine looks the resource
up once, then dispatches on the action and the record's existence.

# State Machine

	           exists              absent
	add        update(F) or error  create
	update     patch               add(F) or error
	remove     delete              error
	sdt        schedule            error

Entries marked (F) require force managing, which lets add and update cross
over when the record's existence disagrees with the action. Without it,
add against an existing record fails with ErrExists and update against a
missing one with ErrAbsent. Remove and sdt never cross over.

A lookup can also be inconclusive: the server answered, but with an error
that is neither an authentication failure nor the kind's not-found
wording. Crossover never runs on an inconclusive lookup; the error is
surfaced instead, since acting on it could duplicate or clobber the
record it failed to see.

# Specs

Each resource family implements Spec: device, device group, collector,
collector group, escalation chain, alert rule, ops note and website
check. Optional fields are pointers, so a payload only carries what the
caller actually set and a PATCH leaves the rest of the record alone.

Specs opt into behavior through small interfaces. forceManaged enables
crossover, opTyped passes the property merge mode through as a query
parameter, versioned overrides the X-Version header, and DowntimeSpec
adds the sdt action with the kind's downtime discriminator fields.

# Reference Fields

Payload builders accept relations as an ID or a human label (collector
description, group name, full path) and resolve the label to an ID at
build time. A relation that resolves to nothing fails the action rather
than being dropped from the payload, since the server would read the
omission as "leave unchanged" and the caller meant "point here".

# Scheduled Downtime

The sdt action posts a one-time downtime window against the resolved
record. The window comes from the embedded Downtime fields via pkg/sdt:
an explicit end time wins over a duration, and a zero duration defaults
to thirty minutes. Each kind contributes its own type discriminator and
target reference, such as CollectorSDT/collectorId.
*/
package reconcile
