package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// CurrentSchemaVersion is the persisted record layout written by [Encode].
const CurrentSchemaVersion = 1

// ErrSchemaUnknown is returned by [Decode] for records written by an
// incompatible client version. Callers treat it as "no usable state".
var ErrSchemaUnknown = errors.New("persisted session schema unknown")

type persistedState struct {
	SchemaVersion int      `json:"schema_version"`
	Token         string   `json:"token"`
	User          *User    `json:"user,omitempty"`
	Profile       *Profile `json:"profile,omitempty"`
	Authenticated bool     `json:"is_authenticated"`
}

// Encode serializes a [State] into the durable record format.
func Encode(st State) ([]byte, error) {
	return json.Marshal(persistedState{
		SchemaVersion: CurrentSchemaVersion,
		Token:         st.Token,
		User:          st.User,
		Profile:       st.Profile,
		Authenticated: st.Authenticated,
	})
}

// Decode parses a durable record back into a [State]. A record with an
// unknown schema version fails with [ErrSchemaUnknown]; a record that
// violates the authentication invariant is degraded to signed-out rather
// than rejected, because a stale or hand-edited record must never grant
// authenticated state.
func Decode(data []byte) (State, error) {
	var rec persistedState
	if err := json.Unmarshal(data, &rec); err != nil {
		return State{}, fmt.Errorf("decode persisted session: %w", err)
	}
	if rec.SchemaVersion != CurrentSchemaVersion {
		return State{}, fmt.Errorf("%w: version %d", ErrSchemaUnknown, rec.SchemaVersion)
	}

	st := State{
		Token:         rec.Token,
		User:          rec.User,
		Profile:       rec.Profile,
		Authenticated: rec.Authenticated,
	}
	if st.Token == "" || st.User == nil {
		st = State{}
	}
	return st, nil
}
