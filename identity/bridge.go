package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrTokenPairInvalid is an exported constant or variable used by the session client.
	ErrTokenPairInvalid = errors.New("token pair invalid")
	// ErrProviderUnavailable is an exported constant or variable used by the session client.
	ErrProviderUnavailable = errors.New("identity provider unavailable")
	// ErrProviderRejected is an exported constant or variable used by the session client.
	ErrProviderRejected = errors.New("identity provider rejected token exchange")
)

// Session is the provider-side view of an authenticated user: the bearer
// token pair plus the identity proven by the access token's claims.
type Session struct {
	AccessToken  string
	RefreshToken string
	UserID       string
	Email        string
	ExpiresAt    time.Time
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

// Config defines a public type used by identity bridge construction.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// BaseURL is the identity service root, e.g. "https://xyz.supabase.co".
	// When empty the bridge operates offline: expired access tokens cannot
	// be exchanged and are rejected.
	BaseURL string
	// APIKey is sent as the provider's apikey header on every call.
	APIKey string
	// Leeway treats tokens expiring within this window as already expired,
	// so a session established right before expiry still round-trips.
	Leeway     time.Duration
	HTTPClient *http.Client
}

type sessionEvent struct {
	session *Session
	// only targets a single subscriber (replay on subscribe); nil fans out.
	only *uuid.UUID
}

// Bridge is the identity-provider bridge. Session-change events are delivered
// asynchronously, in order, by a single dispatch goroutine.
type Bridge struct {
	cfg  Config
	http *http.Client

	mu      sync.Mutex
	current *Session
	subs    map[uuid.UUID]func(*Session)

	ch        chan sessionEvent
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New creates a [Bridge]. BaseURL may be empty for offline use.
func New(cfg Config) *Bridge {
	if cfg.Leeway <= 0 {
		cfg.Leeway = 30 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	b := &Bridge{
		cfg:  cfg,
		http: httpClient,
		subs: make(map[uuid.UUID]func(*Session)),
		ch:   make(chan sessionEvent, 16),
		done: make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run()

	return b
}

func (b *Bridge) run() {
	defer b.wg.Done()

	for {
		select {
		case ev := <-b.ch:
			b.deliver(ev)
		case <-b.done:
			for {
				select {
				case ev := <-b.ch:
					b.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (b *Bridge) deliver(ev sessionEvent) {
	b.mu.Lock()
	targets := make([]func(*Session), 0, len(b.subs))
	if ev.only != nil {
		if fn, ok := b.subs[*ev.only]; ok {
			targets = append(targets, fn)
		}
	} else {
		for _, fn := range b.subs {
			targets = append(targets, fn)
		}
	}
	b.mu.Unlock()

	for _, fn := range targets {
		fn(ev.session.clone())
	}
}

func (b *Bridge) emit(ev sessionEvent) {
	select {
	case b.ch <- ev:
	case <-b.done:
	}
}

// Close stops event dispatch after draining queued events.
func (b *Bridge) Close() {
	if b == nil {
		return
	}
	b.closeOnce.Do(func() {
		close(b.done)
		b.wg.Wait()
	})
}

// SetSession establishes a live session from an externally obtained token
// pair. It is idempotent under retry with the same tokens: a pair matching
// the current session returns it unchanged and fires no event. An expired
// access token is exchanged through the provider's refresh grant.
func (b *Bridge) SetSession(ctx context.Context, accessToken, refreshToken string) (*Session, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, ErrTokenPairInvalid
	}

	b.mu.Lock()
	if b.current != nil && b.current.AccessToken == accessToken {
		cur := b.current.clone()
		b.mu.Unlock()
		return cur, nil
	}
	b.mu.Unlock()

	sess, err := sessionFromTokens(accessToken, refreshToken)
	if err != nil {
		return nil, err
	}

	if time.Until(sess.ExpiresAt) < b.cfg.Leeway {
		sess, err = b.refreshGrant(ctx, refreshToken)
		if err != nil {
			return nil, err
		}
	}

	b.mu.Lock()
	b.current = sess.clone()
	b.mu.Unlock()

	b.emit(sessionEvent{session: sess.clone()})
	return sess, nil
}

// CurrentSession returns the live session, or nil when signed out.
func (b *Bridge) CurrentSession() *Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current.clone()
}

// OnSessionChange registers fn for asynchronous delivery of every session
// change (sign-in, sign-out, token refresh). The current session, if any, is
// replayed to the new subscriber so late subscribers converge. The returned
// cancel function removes the subscription.
func (b *Bridge) OnSessionChange(fn func(*Session)) func() {
	id := uuid.New()

	b.mu.Lock()
	b.subs[id] = fn
	cur := b.current.clone()
	b.mu.Unlock()

	if cur != nil {
		b.emit(sessionEvent{session: cur, only: &id})
	}

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// SignOut revokes the provider session. Local state is cleared and a nil
// session event is emitted even when the remote revoke fails; the returned
// error reports the revoke outcome so callers can log it.
func (b *Bridge) SignOut(ctx context.Context) error {
	b.mu.Lock()
	cur := b.current
	b.current = nil
	b.mu.Unlock()

	b.emit(sessionEvent{session: nil})

	if cur == nil || b.cfg.BaseURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.cfg.BaseURL+"/auth/v1/logout", nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+cur.AccessToken)
	if b.cfg.APIKey != "" {
		req.Header.Set("apikey", b.cfg.APIKey)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusUnauthorized {
		return fmt.Errorf("%w: logout status %d", ErrProviderRejected, resp.StatusCode)
	}
	return nil
}

type refreshGrantResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (b *Bridge) refreshGrant(ctx context.Context, refreshToken string) (*Session, error) {
	if b.cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: access token expired and no provider configured", ErrTokenPairInvalid)
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}

	url := b.cfg.BaseURL + "/auth/v1/token?grant_type=refresh_token"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.cfg.APIKey != "" {
		req.Header.Set("apikey", b.cfg.APIKey)
	}

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: refresh grant status %d", ErrProviderRejected, resp.StatusCode)
	}

	var grant refreshGrantResponse
	if err := json.NewDecoder(resp.Body).Decode(&grant); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}
	if grant.AccessToken == "" {
		return nil, fmt.Errorf("%w: refresh grant returned no access token", ErrProviderRejected)
	}

	sess, err := sessionFromTokens(grant.AccessToken, grant.RefreshToken)
	if err != nil {
		return nil, err
	}
	if sess.UserID == "" {
		sess.UserID = grant.User.ID
	}
	if sess.Email == "" {
		sess.Email = grant.User.Email
	}
	if sess.ExpiresAt.IsZero() && grant.ExpiresIn > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second)
	}
	return sess, nil
}

// sessionFromTokens peeks at the access token's claims without verifying the
// signature. The client does not hold the provider's signing key; the backend
// re-validates the token on every request, so an unverified peek only risks
// a doomed sync, never privilege.
func sessionFromTokens(accessToken, refreshToken string) (*Session, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenPairInvalid, err)
	}

	sess := &Session{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if sub, err := claims.GetSubject(); err == nil {
		sess.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		sess.Email = strings.TrimSpace(email)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		sess.ExpiresAt = exp.Time
	}
	return sess, nil
}
