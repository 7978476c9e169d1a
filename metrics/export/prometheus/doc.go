// Package prometheus renders medauth metrics for Prometheus scraping.
//
// [NewPrometheusExporter] accepts a [medauth.Client] and exposes an [http.Handler]
// that renders all medauth counters and histograms in Prometheus text exposition format.
// Counter names are prefixed medauth_*_total; the single histogram is
// medauth_sync_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
