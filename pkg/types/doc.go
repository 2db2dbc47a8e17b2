/*
Package types defines the core data structures used throughout lmctl.

This package contains the fundamental types that represent the domain model:
API credentials, decoded API records, reconcile actions, property merge modes,
and action results. These types are used by all other packages and carry no
behavior beyond simple accessors.

# Core Types

Credentials:
  - Credential: company, access ID and access key for signed requests

API Data:
  - Record: a decoded JSON object with typed accessors (Int, String, ID, Slice)
  - Property: a name/value custom property entry

Reconciliation:
  - Action: add, update, remove, sdt
  - OpType: refresh, replace, add property merge semantics
  - Result: changed flag, action performed, resulting record, extra info

# Design Notes

Record is a map rather than per-resource structs because the platform's
endpoints return wide, versioned objects of which lmctl reads only a few
fields. Responses round-trip through Record untouched, so fields lmctl does
not know about survive into Result.Data.

All types serialize to JSON with stable field names; Result is the shape
emitted by the CLI on success.
*/
package types
