// Package medauth is the client-side session core of the bitácora médica
// application: it captures OAuth deep links, establishes identity-provider
// sessions, synchronizes the authenticated user with the clinical backend,
// and maintains a persisted session store that route guards read from.
//
// The package is designed for concurrent use: Client methods are safe to call
// from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// medauth is the public surface. It exposes [Client], [Builder], [Config], and
// value types (State, User, Profile, MetricsSnapshot). Supporting concerns
// live in sub-packages — identity bridging under identity/, the session store
// under session/, the backend HTTP client under api/, route gating under
// guard/ — and audit dispatch under internal/ is never exported directly.
//
// # What this package must NOT do
//
//   - Decide authorization from token claims. Role and approval status come
//     only from the backend's /auth/me record.
//   - Expose persistence backends or wire encodings in its public API.
//   - Block event delivery on network I/O: backend sync runs asynchronously
//     and readiness is reported through [Client.WaitReady].
//
// # Session lifecycle contract
//
// Every identity session event results in at most one backend sync per access
// token. A sync failure other than approval-pending signs the user out; an
// approval-pending response keeps the optimistic placeholder session so the
// user can reach the pending-approval screen. Stale sync results never
// overwrite a session that changed while the sync was in flight.
package medauth
