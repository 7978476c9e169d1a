// Package identity wraps the third-party session/identity service behind a
// small bridge: establish a session from an externally obtained token pair,
// read the current session, subscribe to session changes, and sign out.
//
// The bridge never decides authorization. Token claims are only used to prove
// identity (subject, email, expiry); roles and approval status always come
// from the application backend.
package identity
