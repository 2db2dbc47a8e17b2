/*
Package metrics provides Prometheus instrumentation for lmctl.

All metrics are package-level collectors registered at init time with the
default registry, so any package can record observations without plumbing a
registry through call sites.

# Metrics

API layer:
  - lmctl_api_requests_total: REST requests by method and HTTP status
  - lmctl_api_request_duration_seconds: request latency histogram by method
  - lmctl_pagination_pages_total: pages fetched across all list requests
  - lmctl_pagination_truncated_total: lists stopped at the iteration cap

Reconciliation:
  - lmctl_resolver_lookups_total: lookups by resource kind and outcome
  - lmctl_reconcile_actions_total: actions by kind, action, and outcome

# Usage

Recording a timed request:

	timer := metrics.NewTimer()
	resp, err := httpClient.Do(req)
	timer.ObserveDuration(metrics.APIRequestDuration.WithLabelValues(method))

Exposing the scrape endpoint:

	http.Handle("/metrics", metrics.Handler())
*/
package metrics
