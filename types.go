package medauth

import (
	"context"
	"io"

	"github.com/bitacora-medica/medauth/identity"
	internalaudit "github.com/bitacora-medica/medauth/internal/audit"
	"github.com/bitacora-medica/medauth/session"
)

// Role is the backend-assigned authorization role of a user.
type Role = session.Role

const (
	// RoleAdmin is an exported constant or variable used by the session client.
	RoleAdmin = session.RoleAdmin
	// RoleProfessional is an exported constant or variable used by the session client.
	RoleProfessional = session.RoleProfessional
)

// Status is the backend approval status of an account.
type Status = session.Status

const (
	// StatusActive is an exported constant or variable used by the session client.
	StatusActive = session.StatusActive
	// StatusInactive is an exported constant or variable used by the session client.
	StatusInactive = session.StatusInactive
)

// User is the backend identity attached to an authenticated session.
type User = session.User

// Profile is the extended professional profile attached to a session.
type Profile = session.Profile

// ProfilePatch is a partial profile update; nil fields are left untouched.
type ProfilePatch = session.ProfilePatch

// State is an immutable snapshot of the session store.
type State = session.State

// IdentityProvider is the surface the client needs from the identity service.
// [identity.Bridge] satisfies it; tests substitute fakes.
type IdentityProvider interface {
	SetSession(ctx context.Context, accessToken, refreshToken string) (*identity.Session, error)
	CurrentSession() *identity.Session
	OnSessionChange(fn func(*identity.Session)) func()
	SignOut(ctx context.Context) error
}

// Navigator receives route changes the client decides on (deep link landing).
// A nil Navigator drops them.
type Navigator func(route string)

// AuditEvent is a structured audit record emitted by the client.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the client's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
