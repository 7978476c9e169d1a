package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Store owns the authoritative copy of the client session. All mutations are
// atomic with respect to readers and are written through to the configured
// [Persistence] backend.
//
// Persistence write failures are logged and do not fail the mutation: the
// in-memory state is the source of truth for the running process, and a
// missing durable record only costs a re-sync on the next start.
type Store struct {
	mu      sync.Mutex
	state   State
	subs    map[uuid.UUID]func(State)
	persist Persistence
}

// NewStore creates a [Store] backed by persist and restores any previously
// saved record. A missing, corrupt, or incompatible record yields a
// signed-out store, never an error: startup must not be blocked by stale
// local state.
func NewStore(persist Persistence) *Store {
	s := &Store{
		subs:    make(map[uuid.UUID]func(State)),
		persist: persist,
	}
	if persist == nil {
		return s
	}

	data, err := persist.Load(context.Background())
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Print("medauth: persisted session load failed")
		}
		return s
	}
	st, err := Decode(data)
	if err != nil {
		log.Print("medauth: persisted session discarded")
		return s
	}
	s.state = st
	return s
}

// SetAuth replaces the session wholesale with an authenticated state.
func (s *Store) SetAuth(token string, user User, profile Profile) {
	s.mu.Lock()
	s.state = State{
		Token:         token,
		User:          &user,
		Profile:       &profile,
		Authenticated: token != "",
	}
	snapshot, subs := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot, subs)
}

// CommitSynced applies the fully normalized backend identity, but only while
// the store still holds the token the sync started from. A false return means
// the session changed underneath the sync (logout or a newer sign-in) and the
// stale result was discarded.
func (s *Store) CommitSynced(token string, user User, profile Profile) bool {
	s.mu.Lock()
	if s.state.Token != token {
		s.mu.Unlock()
		return false
	}
	s.state = State{
		Token:         token,
		User:          &user,
		Profile:       &profile,
		Authenticated: token != "",
	}
	snapshot, subs := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot, subs)
	return true
}

// UpdateProfile shallow-merges patch into the current profile. It is a no-op
// when no profile is present.
func (s *Store) UpdateProfile(patch ProfilePatch) {
	s.mu.Lock()
	if s.state.Profile == nil {
		s.mu.Unlock()
		return
	}
	merged := *s.state.Profile
	patch.apply(&merged)
	s.state.Profile = &merged
	snapshot, subs := s.commitLocked()
	s.mu.Unlock()

	s.notify(snapshot, subs)
}

// Logout resets the session to its empty defaults and clears the durable
// record. It is safe to call from any component; in particular the HTTP
// transport's 401 interceptor calls it directly, without going through the
// identity provider bridge.
func (s *Store) Logout() {
	s.mu.Lock()
	s.state = State{}
	if s.persist != nil {
		// Cleared under the lock so a concurrent SetAuth cannot interleave
		// its durable write between the reset and the clear.
		if err := s.persist.Clear(context.Background()); err != nil {
			log.Print("medauth: persisted session clear failed")
		}
	}
	subs := s.subscribersLocked()
	s.mu.Unlock()

	s.notify(State{}, subs)
}

// Snapshot returns a copy of the current session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// IsAuthenticated reports whether the store holds an authenticated session.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Authenticated
}

// Subscribe registers fn to be called with a snapshot after every mutation.
// The returned cancel function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	id := uuid.New()

	s.mu.Lock()
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// commitLocked persists the current state and returns the snapshot plus the
// subscriber list to notify. Callers hold s.mu.
func (s *Store) commitLocked() (State, []func(State)) {
	if s.persist != nil {
		data, err := Encode(s.state)
		if err == nil {
			err = s.persist.Save(context.Background(), data)
		}
		if err != nil {
			log.Print("medauth: persisted session write failed")
		}
	}
	return s.state.clone(), s.subscribersLocked()
}

func (s *Store) subscribersLocked() []func(State) {
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

// notify runs outside the store lock so subscribers may call back into the
// store without deadlocking.
func (s *Store) notify(snapshot State, subs []func(State)) {
	for _, fn := range subs {
		fn(snapshot)
	}
}
