// Package session holds the client's authoritative session state: the bearer
// token, the backend user record, and the approval-gated profile.
//
// The [Store] is the only mutation surface. All writes go through SetAuth,
// CommitSynced, UpdateProfile, or Logout; readers use Snapshot or Subscribe.
// Every mutation is written through to a [Persistence] backend so that a
// process restart does not force re-authentication before the identity
// provider round-trips.
package session
