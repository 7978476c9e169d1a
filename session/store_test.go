package session

import (
	"path/filepath"
	"testing"
)

func newFileBackedStore(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "bitacora-auth-storage.json")
	return NewStore(NewFileStore(path)), path
}

func activeProfile() Profile {
	return Profile{Status: StatusActive, Phone: "123"}
}

func TestSetAuthMarksAuthenticated(t *testing.T) {
	store, _ := newFileBackedStore(t)

	store.SetAuth("tok-1", User{ID: "u1", Email: "a@b.cl", Role: RoleProfessional}, activeProfile())

	st := store.Snapshot()
	if !st.Authenticated {
		t.Fatal("expected authenticated state")
	}
	if st.Token != "tok-1" || st.User == nil || st.User.ID != "u1" {
		t.Fatalf("unexpected state: %+v", st)
	}
}

func TestLogoutResetsAllFields(t *testing.T) {
	store, _ := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1"}, activeProfile())

	store.Logout()

	st := store.Snapshot()
	if st.Token != "" || st.User != nil || st.Profile != nil || st.Authenticated {
		t.Fatalf("logout left residual state: %+v", st)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	store, _ := newFileBackedStore(t)

	store.Logout()
	store.Logout()

	if store.IsAuthenticated() {
		t.Fatal("expected signed-out store")
	}
}

func TestUpdateProfileMergesIntoExisting(t *testing.T) {
	store, _ := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1"}, Profile{Status: StatusActive, Phone: "123"})

	specialty := "Kinesiología"
	store.UpdateProfile(ProfilePatch{Specialty: &specialty})

	p := store.Snapshot().Profile
	if p == nil {
		t.Fatal("expected profile")
	}
	if p.Status != StatusActive || p.Phone != "123" || p.Specialty != "Kinesiología" {
		t.Fatalf("merge lost fields: %+v", p)
	}
}

func TestUpdateProfileWithoutProfileIsNoOp(t *testing.T) {
	store, _ := newFileBackedStore(t)

	specialty := "Kinesiología"
	store.UpdateProfile(ProfilePatch{Specialty: &specialty})

	if store.Snapshot().Profile != nil {
		t.Fatal("expected nil profile to stay nil")
	}
}

func TestCommitSyncedRejectsStaleToken(t *testing.T) {
	store, _ := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1", Role: RoleProfessional}, Profile{Status: StatusInactive})
	store.Logout()

	ok := store.CommitSynced("tok-1", User{ID: "u1", Role: RoleAdmin}, activeProfile())

	if ok {
		t.Fatal("expected stale commit to be rejected")
	}
	if store.IsAuthenticated() {
		t.Fatal("stale commit resurrected the session")
	}
}

func TestCommitSyncedAppliesWhenTokenMatches(t *testing.T) {
	store, _ := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1", Role: RoleProfessional}, Profile{Status: StatusInactive})

	ok := store.CommitSynced("tok-1", User{ID: "u1", Role: RoleAdmin}, activeProfile())

	if !ok {
		t.Fatal("expected commit to apply")
	}
	st := store.Snapshot()
	if st.User.Role != RoleAdmin || st.Profile.Status != StatusActive {
		t.Fatalf("commit not applied: %+v", st)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	store, _ := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1"}, activeProfile())

	st := store.Snapshot()
	st.User.ID = "mutated"
	st.Profile.Status = StatusInactive

	cur := store.Snapshot()
	if cur.User.ID != "u1" || cur.Profile.Status != StatusActive {
		t.Fatal("snapshot aliases store internals")
	}
}

func TestSubscribeReceivesEveryMutation(t *testing.T) {
	store, _ := newFileBackedStore(t)

	var got []State
	cancel := store.Subscribe(func(st State) {
		got = append(got, st)
	})
	defer cancel()

	store.SetAuth("tok-1", User{ID: "u1"}, activeProfile())
	store.Logout()

	if len(got) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(got))
	}
	if !got[0].Authenticated || got[1].Authenticated {
		t.Fatalf("unexpected notification order: %+v", got)
	}
}

func TestSubscribeCancelStopsDelivery(t *testing.T) {
	store, _ := newFileBackedStore(t)

	calls := 0
	cancel := store.Subscribe(func(State) { calls++ })
	store.SetAuth("tok-1", User{ID: "u1"}, activeProfile())
	cancel()
	store.Logout()

	if calls != 1 {
		t.Fatalf("expected 1 call after cancel, got %d", calls)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	store, path := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1", Email: "a@b.cl", Role: RoleProfessional}, activeProfile())

	restored := NewStore(NewFileStore(path))

	st := restored.Snapshot()
	if !st.Authenticated || st.Token != "tok-1" || st.User.Email != "a@b.cl" {
		t.Fatalf("restore lost state: %+v", st)
	}
}

func TestLogoutClearsDurableRecord(t *testing.T) {
	store, path := newFileBackedStore(t)
	store.SetAuth("tok-1", User{ID: "u1"}, activeProfile())
	store.Logout()

	restored := NewStore(NewFileStore(path))

	if restored.IsAuthenticated() {
		t.Fatal("durable record survived logout")
	}
}
