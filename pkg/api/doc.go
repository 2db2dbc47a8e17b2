/*
Package api implements the signed REST client for the monitoring portal.

The client derives the portal URL from the account name, signs every request
with an LMv1 token from pkg/auth, and normalizes the platform's two error
channels (HTTP status and in-body errorCode) into a single *APIError.

# Architecture

	┌──────────────────────────────────────────────┐
	│                 callers                       │
	│   pkg/resources (lookups, filtered lists)     │
	│   pkg/reconcile (POST/PATCH/DELETE actions)   │
	└──────────────────┬───────────────────────────┘
	                   │
	┌──────────────────▼───────────────────────────┐
	│               Client.Do                       │
	│  - LMv1 Authorization header                  │
	│  - X-Version / Content-Type headers           │
	│  - JSON encode/decode                         │
	│  - error normalization (*APIError, ErrAuth)   │
	│  - request metrics and debug logging          │
	└──────────────────┬───────────────────────────┘
	                   │ HTTPS
	            {company}.logicmonitor.com

# Error Model

A call succeeds only when the HTTP status is 200 and the decoded body has no
errorCode. Every other outcome is an *APIError carrying the status, code,
message and decoded body. HTTP 401 and platform code 1401 additionally
unwrap to ErrAuth so callers can refuse to mask credential problems:

	body, err := client.Do(ctx, req)
	if errors.Is(err, api.ErrAuth) {
		return err // never treat as not-found
	}

Do returns the decoded body alongside the error, which lets the resolver
distinguish a genuine failure from the platform's not-found responses.

# Pagination

FetchAll follows the offset/size list contract, clamping the page size to
1000 and capping the loop at 1000 iterations. The cap logs a warning and
returns the partial result; a failed page aborts the whole fetch.

# Usage

	client := api.NewClient(cred)
	body, err := client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   "/device/devices",
		PathSuffix: "/42",
	})

Local development portals (company "localdev") are contacted with TLS
verification disabled.
*/
package api
