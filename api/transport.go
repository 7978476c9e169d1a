package api

import (
	"net/http"
)

// TokenSource defines a public type used by the backend client.
//
// Token returns the current bearer token, or "" when signed out.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc defines a public type used by the backend client.
type TokenSourceFunc func() string

// Token is an exported method of TokenSourceFunc.
func (f TokenSourceFunc) Token() string { return f() }

// Transport is an http.RoundTripper that attaches the current bearer token to
// every outgoing request and reports 401 responses through OnUnauthorized.
// Requests are cloned before mutation, so a Transport is safe to share.
type Transport struct {
	// Base performs the actual round trip. Defaults to http.DefaultTransport.
	Base http.RoundTripper
	// Tokens supplies the bearer token. A nil source or empty token leaves
	// the request unauthenticated.
	Tokens TokenSource
	// OnUnauthorized runs after any response with status 401. The response
	// is still returned to the caller.
	OnUnauthorized func()
}

// RoundTrip is an exported method of Transport.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if t.Tokens != nil {
		if token := t.Tokens.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.OnUnauthorized != nil {
		t.OnUnauthorized()
	}
	return resp, nil
}
