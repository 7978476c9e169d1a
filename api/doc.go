// Package api is the typed HTTP client for the clinical record backend. It
// injects the bearer token on every request, reports non-2xx responses as
// [StatusError] values, and invokes an invalidation hook when the backend
// answers 401 so the session layer can sign the user out.
package api
