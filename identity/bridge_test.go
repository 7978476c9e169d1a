package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, sub, email string, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": email,
		"exp":   exp.Unix(),
	})
	out, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return out
}

type eventRecorder struct {
	mu     sync.Mutex
	events []*Session
	signal chan struct{}
}

func newEventRecorder() *eventRecorder {
	return &eventRecorder{signal: make(chan struct{}, 32)}
}

func (r *eventRecorder) record(s *Session) {
	r.mu.Lock()
	r.events = append(r.events, s)
	r.mu.Unlock()
	r.signal <- struct{}{}
}

func (r *eventRecorder) wait(t *testing.T, n int) []*Session {
	t.Helper()

	deadline := time.After(2 * time.Second)
	for {
		r.mu.Lock()
		got := len(r.events)
		r.mu.Unlock()
		if got >= n {
			break
		}
		select {
		case <-r.signal:
		case <-deadline:
			t.Fatalf("timed out waiting for %d events, have %d", n, got)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Session, len(r.events))
	copy(out, r.events)
	return out
}

func TestSetSessionEstablishesAndNotifies(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	rec := newEventRecorder()
	cancel := bridge.OnSessionChange(rec.record)
	defer cancel()

	access := signedToken(t, "u1", "a@b.cl", time.Now().Add(time.Hour))
	sess, err := bridge.SetSession(context.Background(), access, "refresh-1")
	if err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}
	if sess.UserID != "u1" || sess.Email != "a@b.cl" {
		t.Fatalf("claims not extracted: %+v", sess)
	}

	events := rec.wait(t, 1)
	if events[0] == nil || events[0].AccessToken != access {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestSetSessionIdempotentForSamePair(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	rec := newEventRecorder()
	cancel := bridge.OnSessionChange(rec.record)
	defer cancel()

	access := signedToken(t, "u1", "a@b.cl", time.Now().Add(time.Hour))
	first, err := bridge.SetSession(context.Background(), access, "refresh-1")
	if err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}
	second, err := bridge.SetSession(context.Background(), access, "refresh-1")
	if err != nil {
		t.Fatalf("repeat SetSession failed: %v", err)
	}
	if first.AccessToken != second.AccessToken || first.UserID != second.UserID {
		t.Fatalf("repeat produced divergent session: %+v vs %+v", first, second)
	}

	// Exactly one change event despite two calls.
	rec.wait(t, 1)
	time.Sleep(50 * time.Millisecond)
	if got := len(rec.wait(t, 1)); got != 1 {
		t.Fatalf("expected 1 event, got %d", got)
	}
}

func TestSetSessionRejectsEmptyTokens(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	if _, err := bridge.SetSession(context.Background(), "", "r"); !errors.Is(err, ErrTokenPairInvalid) {
		t.Fatalf("expected ErrTokenPairInvalid, got %v", err)
	}
	if _, err := bridge.SetSession(context.Background(), "a", ""); !errors.Is(err, ErrTokenPairInvalid) {
		t.Fatalf("expected ErrTokenPairInvalid, got %v", err)
	}
	if bridge.CurrentSession() != nil {
		t.Fatal("rejected pair must not establish a session")
	}
}

func TestSetSessionRejectsMalformedAccessToken(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	if _, err := bridge.SetSession(context.Background(), "not-a-jwt", "r"); !errors.Is(err, ErrTokenPairInvalid) {
		t.Fatalf("expected ErrTokenPairInvalid, got %v", err)
	}
}

func TestSetSessionRefreshesExpiredToken(t *testing.T) {
	fresh := ""
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "refresh_token" {
			http.NotFound(w, r)
			return
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "refresh-1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":  fresh,
			"refresh_token": "refresh-2",
			"expires_in":    3600,
		})
	}))
	defer srv.Close()

	bridge := New(Config{BaseURL: srv.URL})
	defer bridge.Close()

	fresh = signedToken(t, "u1", "a@b.cl", time.Now().Add(time.Hour))
	expired := signedToken(t, "u1", "a@b.cl", time.Now().Add(-time.Hour))

	sess, err := bridge.SetSession(context.Background(), expired, "refresh-1")
	if err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}
	if sess.AccessToken != fresh || sess.RefreshToken != "refresh-2" {
		t.Fatalf("refresh grant not applied: %+v", sess)
	}
}

func TestSetSessionExpiredWithoutProviderFails(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	expired := signedToken(t, "u1", "a@b.cl", time.Now().Add(-time.Hour))
	if _, err := bridge.SetSession(context.Background(), expired, "refresh-1"); !errors.Is(err, ErrTokenPairInvalid) {
		t.Fatalf("expected ErrTokenPairInvalid, got %v", err)
	}
}

func TestSignOutClearsAndEmitsNil(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	rec := newEventRecorder()
	cancel := bridge.OnSessionChange(rec.record)
	defer cancel()

	access := signedToken(t, "u1", "a@b.cl", time.Now().Add(time.Hour))
	if _, err := bridge.SetSession(context.Background(), access, "refresh-1"); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}
	if err := bridge.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	events := rec.wait(t, 2)
	if events[1] != nil {
		t.Fatalf("expected nil sign-out event, got %+v", events[1])
	}
	if bridge.CurrentSession() != nil {
		t.Fatal("session survived sign-out")
	}
}

func TestOnSessionChangeReplaysCurrent(t *testing.T) {
	bridge := New(Config{})
	defer bridge.Close()

	access := signedToken(t, "u1", "a@b.cl", time.Now().Add(time.Hour))
	if _, err := bridge.SetSession(context.Background(), access, "refresh-1"); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	rec := newEventRecorder()
	cancel := bridge.OnSessionChange(rec.record)
	defer cancel()

	events := rec.wait(t, 1)
	if events[0] == nil || events[0].UserID != "u1" {
		t.Fatalf("expected replayed session, got %+v", events[0])
	}
}
