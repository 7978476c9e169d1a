package internaldefs

import (
	medauth "github.com/bitacora-medica/medauth"
)

// CounterDef defines a public type used by medauth APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   medauth.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by medauth APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   medauth.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the session client.
var CounterDefs = []CounterDef{
	{ID: medauth.MetricDeepLinkAccepted, Name: "medauth_deep_link_accepted_total", Help: "Deep links that established a session."},
	{ID: medauth.MetricDeepLinkIgnored, Name: "medauth_deep_link_ignored_total", Help: "Matching deep links without a usable token pair."},
	{ID: medauth.MetricDeepLinkRejected, Name: "medauth_deep_link_rejected_total", Help: "Deep links rejected by the identity provider."},
	{ID: medauth.MetricSessionEstablished, Name: "medauth_session_established_total", Help: "Identity sessions accepted for backend sync."},
	{ID: medauth.MetricSessionRestored, Name: "medauth_session_restored_total", Help: "Sessions restored from the persisted store at startup."},
	{ID: medauth.MetricSyncSuccess, Name: "medauth_sync_success_total", Help: "Backend identity syncs committed to the store."},
	{ID: medauth.MetricSyncSkipped, Name: "medauth_sync_skipped_total", Help: "Syncs skipped by the token deduplication guard."},
	{ID: medauth.MetricSyncApprovalPending, Name: "medauth_sync_approval_pending_total", Help: "Syncs answered with approval-pending by the backend."},
	{ID: medauth.MetricSyncFailure, Name: "medauth_sync_failure_total", Help: "Syncs that failed and signed the user out."},
	{ID: medauth.MetricSyncStaleDiscarded, Name: "medauth_sync_stale_discarded_total", Help: "Sync results discarded because the session changed in flight."},
	{ID: medauth.MetricNormalizationFailure, Name: "medauth_normalization_failure_total", Help: "Backend payloads rejected by identity normalization."},
	{ID: medauth.MetricLogout, Name: "medauth_logout_total", Help: "Logout operations."},
}

// HistogramDefs is an exported constant or variable used by the session client.
var HistogramDefs = []HistogramDef{
	{ID: medauth.MetricSyncLatency, Name: "medauth_sync_latency_seconds", Help: "Backend sync latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the session client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the session client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
