/*
Package resources resolves monitoring resources to their existing records.

Each resource family is a Kind: its REST endpoint plus the exact wording the
platform uses to say a record of that family does not exist. The wording is
endpoint-specific and occasionally misspelled server side, so it lives next
to the endpoint rather than in callers.

# Lookup Model

The Resolver offers three lookups:

  - GetByID: direct fetch, not-found normalized to a nil record
  - FindFirst: exact field filter against the list endpoint, first match
  - Find: combined flow, ID first with field match as fallback

Find implements the precedence rule the reconcile engine depends on: when
both an ID and a name are given, a conclusive ID hit wins, but an
inconclusive ID lookup (not found, or a non-auth error) defers to the name
match. Authentication failures are never downgraded to "not found".

# Device Group Paths

Device groups are addressed by slash-separated full paths. CheckGroupPath
rejects malformed paths (empty segments, whitespace around separators) and
EnsureGroupPath walks a path from the root group, creating any missing
ancestors, returning the leaf group's ID. The root path "/" is the implicit
group 1 and is never looked up.

# Custom Properties

BuildProperties turns a free-form map into the API's name/value pair list.
Lists join on commas and entries are sorted by key so repeated runs produce
identical payloads.
*/
package resources
