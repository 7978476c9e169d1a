package medauth

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// TokenPair is the access/refresh token pair carried by an OAuth callback
// deep link.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// ParseDeepLink extracts the token pair from a callback URL of the form
// scheme://host#access_token=...&refresh_token=... (the provider places the
// tokens in the fragment; they are re-read as query parameters). A URL for a
// different scheme or host returns [ErrDeepLinkForeign]; a matching URL
// without both tokens returns [ErrDeepLinkNoTokens].
func ParseDeepLink(raw, scheme, host string) (TokenPair, error) {
	prefix := scheme + "://" + host
	if !strings.HasPrefix(raw, prefix) {
		return TokenPair{}, ErrDeepLinkForeign
	}

	// The token pair rides in the URL fragment. Promoting it to a query
	// string lets the standard parser read it.
	parsed, err := url.Parse(strings.Replace(raw, "#", "?", 1))
	if err != nil {
		return TokenPair{}, ErrDeepLinkNoTokens
	}

	q := parsed.Query()
	pair := TokenPair{
		AccessToken:  q.Get("access_token"),
		RefreshToken: q.Get("refresh_token"),
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return TokenPair{}, ErrDeepLinkNoTokens
	}
	return pair, nil
}

// HandleURL processes an operating-system URL-open event. URLs outside the
// configured deep link scheme are ignored without error, as are matching URLs
// that carry no token pair. A valid pair is handed to the identity provider;
// on success the client navigates to the configured landing route.
//
// The client must be started first; a session established with no event
// subscriber would never reach the backend sync.
func (c *Client) HandleURL(ctx context.Context, raw string) error {
	if !c.started.Load() {
		return ErrClientNotReady
	}

	pair, err := ParseDeepLink(raw, c.cfg.DeepLink.Scheme, c.cfg.DeepLink.Host)
	switch err {
	case nil:
	case ErrDeepLinkForeign:
		return nil
	case ErrDeepLinkNoTokens:
		c.metrics.Inc(MetricDeepLinkIgnored)
		c.emit("deep_link.ignored", "", false, err.Error())
		return nil
	default:
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Sync.Timeout)
	defer cancel()

	sess, err := c.provider.SetSession(ctx, pair.AccessToken, pair.RefreshToken)
	if err != nil {
		// The session store is untouched: a bad deep link must not disturb
		// an existing session.
		c.metrics.Inc(MetricDeepLinkRejected)
		c.emit("deep_link.rejected", "", false, err.Error())
		return ErrBridgeRejected
	}

	c.metrics.Inc(MetricDeepLinkAccepted)
	c.audit.Emit(ctx, AuditEvent{
		Timestamp: time.Now(),
		EventType: "deep_link.accepted",
		UserID:    sess.UserID,
		Route:     c.cfg.DeepLink.LandingRoute,
		Success:   true,
	})

	if c.navigate != nil {
		c.navigate(c.cfg.DeepLink.LandingRoute)
	}
	return nil
}
