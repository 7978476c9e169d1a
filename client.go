package medauth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitacora-medica/medauth/api"
	"github.com/bitacora-medica/medauth/identity"
	internalaudit "github.com/bitacora-medica/medauth/internal/audit"
	"github.com/bitacora-medica/medauth/session"
)

// Client coordinates the session lifecycle: identity events in, backend sync,
// session store out. Construct it through [Builder.Build] and call [Client.Start]
// once; all other methods are safe for concurrent use afterwards.
type Client struct {
	cfg      Config
	store    *session.Store
	provider IdentityProvider
	// ownBridge is set when the client constructed its own identity bridge
	// and therefore owns its shutdown.
	ownBridge *identity.Bridge
	api       *api.Client
	navigate  Navigator
	audit     *internalaudit.Dispatcher
	metrics   *Metrics

	syncMu    sync.Mutex
	lastToken string

	readyOnce sync.Once
	readyCh   chan struct{}

	startOnce      sync.Once
	started        atomic.Bool
	closeOnce      sync.Once
	cancelProvider func()
	cancelStore    func()
	syncs          sync.WaitGroup
}

// Start wires the client to its identity provider and begins processing
// session events. When the persisted store already holds a session and the
// provider has none to replay, the client becomes ready immediately and the
// restored session remains in effect until the next event.
func (c *Client) Start() {
	c.startOnce.Do(func() {
		if c.store.IsAuthenticated() {
			c.metrics.Inc(MetricSessionRestored)
			c.emit("session.restored", c.store.Snapshot().Token, true, "")
		}

		// Any transition to signed-out resets the dedup token, so a logout
		// triggered outside the provider (401 interceptor, explicit Logout)
		// still allows the next session event to re-sync.
		c.cancelStore = c.store.Subscribe(func(st State) {
			if !st.Authenticated {
				c.syncMu.Lock()
				c.lastToken = ""
				c.syncMu.Unlock()
			}
		})

		c.cancelProvider = c.provider.OnSessionChange(c.handleSession)

		if c.provider.CurrentSession() == nil {
			c.setReady()
		}

		c.started.Store(true)
	})
}

func (c *Client) handleSession(s *identity.Session) {
	if s == nil {
		if c.store.IsAuthenticated() {
			c.store.Logout()
			c.metrics.Inc(MetricLogout)
			c.emit("logout", "", true, "")
		}
		c.setReady()
		return
	}

	c.syncs.Add(1)
	go func() {
		defer c.syncs.Done()
		if err := c.syncWithBackend(s); err != nil {
			log.Print("medauth: backend sync failed")
		}
	}()
}

// syncWithBackend resolves the authoritative identity for an established
// session. The flow mirrors the session contract in the package doc: dedup by
// access token, optimistic placeholder, /auth/me, then a guarded commit.
func (c *Client) syncWithBackend(s *identity.Session) error {
	defer c.setReady()

	c.syncMu.Lock()
	if c.lastToken == s.AccessToken {
		c.syncMu.Unlock()
		c.metrics.Inc(MetricSyncSkipped)
		c.emit("sync.skipped", s.UserID, true, "")
		return nil
	}
	c.lastToken = s.AccessToken
	c.syncMu.Unlock()

	c.metrics.Inc(MetricSessionEstablished)
	c.emit("session.established", s.UserID, true, "")

	// Optimistic placeholder so guards see an authenticated, not-yet-approved
	// user while the backend answers.
	c.store.SetAuth(s.AccessToken,
		User{ID: s.UserID, Email: s.Email, Role: RoleProfessional},
		Profile{Status: StatusInactive},
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Sync.Timeout)
	defer cancel()

	start := time.Now()
	payload, err := c.api.Me(ctx)
	c.metrics.Observe(MetricSyncLatency, time.Since(start))

	if err != nil {
		if api.IsStatus(err, http.StatusForbidden) {
			// Pending approval. The placeholder stays so the user lands on
			// the pending-approval screen instead of being signed out.
			c.metrics.Inc(MetricSyncApprovalPending)
			c.emit("sync.approval_pending", s.UserID, false, ErrApprovalPending.Error())
			return nil
		}
		c.store.Logout()
		c.metrics.Inc(MetricSyncFailure)
		c.emit("sync.failure", s.UserID, false, err.Error())
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	user, profile, err := normalizeMe(payload)
	if err != nil {
		// The placeholder session remains authenticated; only the enrichment
		// failed.
		c.metrics.Inc(MetricNormalizationFailure)
		c.emit("sync.normalization_failure", s.UserID, false, err.Error())
		return fmt.Errorf("%w: %v", ErrNormalization, err)
	}

	if !c.store.CommitSynced(s.AccessToken, user, profile) {
		c.metrics.Inc(MetricSyncStaleDiscarded)
		c.emit("sync.stale_discarded", user.ID, false, "")
		return nil
	}

	c.metrics.Inc(MetricSyncSuccess)
	c.emit("sync.success", user.ID, true, "")
	return nil
}

// Logout clears the local session immediately and revokes the provider
// session best-effort. The returned error reports the remote revoke only;
// local state is already signed out when it is returned.
func (c *Client) Logout(ctx context.Context) error {
	c.store.Logout()
	c.metrics.Inc(MetricLogout)
	c.emit("logout", "", true, "")

	return c.provider.SignOut(ctx)
}

// UpdateProfile pushes a partial profile update to the backend and, on
// success, merges it into the local session.
func (c *Client) UpdateProfile(ctx context.Context, patch ProfilePatch) error {
	if !c.store.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	if _, err := c.api.UpdateProfile(ctx, profilePatchFields(patch)); err != nil {
		return err
	}

	c.store.UpdateProfile(patch)
	return nil
}

// Session returns a snapshot of the current session state.
func (c *Client) Session() State {
	return c.store.Snapshot()
}

// OnChange registers fn to observe every session state change. The returned
// cancel function removes the subscription.
func (c *Client) OnChange(fn func(State)) func() {
	return c.store.Subscribe(fn)
}

// Store exposes the underlying session store for guard evaluation.
func (c *Client) Store() *session.Store {
	return c.store
}

// API exposes the authenticated backend client.
func (c *Client) API() *api.Client {
	return c.api
}

// MetricsSnapshot returns a point-in-time copy of the client's counters.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped reports audit events dropped under dispatcher backpressure.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Ready reports whether the initial session resolution has completed.
func (c *Client) Ready() bool {
	select {
	case <-c.readyCh:
		return true
	default:
		return false
	}
}

// WaitReady blocks until the initial session resolution completes or ctx is
// done. Readiness is reached exactly once per process, regardless of how the
// first resolution ends.
func (c *Client) WaitReady(ctx context.Context) error {
	select {
	case <-c.readyCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) setReady() {
	c.readyOnce.Do(func() {
		close(c.readyCh)
	})
}

// Close detaches the client from its provider and store, waits for in-flight
// syncs, and shuts down owned resources.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		if c.cancelProvider != nil {
			c.cancelProvider()
		}
		if c.cancelStore != nil {
			c.cancelStore()
		}
		c.syncs.Wait()
		if c.ownBridge != nil {
			c.ownBridge.Close()
		}
		c.audit.Close()
		c.setReady()
	})
}

func (c *Client) emit(eventType, userID string, success bool, errMsg string) {
	c.audit.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		UserID:    userID,
		Success:   success,
		Error:     errMsg,
	})
}

func profilePatchFields(p ProfilePatch) map[string]any {
	fields := make(map[string]any)
	put := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}
	put("full_name", p.FullName)
	put("specialty", p.Specialty)
	put("phone", p.Phone)
	put("rut", p.RUT)
	put("bio", p.Bio)
	put("birth_date", p.BirthDate)
	put("gender", p.Gender)
	put("nationality", p.Nationality)
	put("residence_country", p.ResidenceCountry)
	put("university", p.University)
	put("avatar_url", p.AvatarURL)
	return fields
}
