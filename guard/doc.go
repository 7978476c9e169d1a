// Package guard evaluates route access against the current session state.
//
// Gating is two-dimensional: authentication (is there a session at all) and
// approval (has the backend activated the account). Guards are pure functions
// of a [session.State] snapshot, so they can run anywhere a snapshot is
// available; [Middleware] adapts them to net/http routing.
package guard
