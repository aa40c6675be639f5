package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/chatkeeper/internal/common"
	"github.com/dmitrijs2005/chatkeeper/internal/logging"
	"github.com/dmitrijs2005/chatkeeper/internal/models"
	"github.com/dmitrijs2005/chatkeeper/internal/storage"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestManager(t *testing.T) (*Manager, *storage.Store) {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryKV(), testLogger())
	return NewManager(context.Background(), store, testLogger()), store
}

func TestRegister_SetsSession(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)
	require.Equal(t, "alice", sess.Username)
	require.NotEmpty(t, sess.ID)

	cur, ok := m.Current()
	require.True(t, ok)
	require.Equal(t, sess, cur)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	_, err = m.Register(ctx, "alice", "p2")
	require.ErrorIs(t, err, common.ErrDuplicateUsername)

	var accounts []models.Account
	require.True(t, store.Get(ctx, "users", &accounts))
	require.Len(t, accounts, 1, "failed registration must not change the collection")
}

func TestLogin_ExactMatchOnly(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)
	m.Logout(ctx)

	_, err = m.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	_, err = m.Login(ctx, "Alice", "p1")
	require.ErrorIs(t, err, common.ErrInvalidCredentials, "username match is case-sensitive")

	sess, err := m.Login(ctx, "alice", "p1")
	require.NoError(t, err)
	require.Equal(t, "alice", sess.Username)
}

func TestLogout_Idempotent(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	m.Logout(ctx)
	m.Logout(ctx)

	_, ok := m.Current()
	require.False(t, ok)
}

func TestSession_HydratedFromStore(t *testing.T) {
	store := storage.NewStore(storage.NewMemoryKV(), testLogger())
	ctx := context.Background()

	m1 := NewManager(ctx, store, testLogger())
	sess, err := m1.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	// A fresh manager over the same store represents a process restart.
	m2 := NewManager(ctx, store, testLogger())
	cur, ok := m2.Current()
	require.True(t, ok)
	require.Equal(t, sess, cur)
}

func TestUpdateProfile_NoActiveSession(t *testing.T) {
	m, _ := newTestManager(t)

	name := "bob"
	_, err := m.UpdateProfile(context.Background(), ProfilePatch{Username: &name})
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}

func TestUpdateProfile_AccountGone(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	// Wipe the accounts collection underneath the session.
	store.Set(ctx, "users", []models.Account{})

	name := "bob"
	_, err = m.UpdateProfile(ctx, ProfilePatch{Username: &name})
	require.ErrorIs(t, err, common.ErrAccountNotFound)
}

func TestUpdateProfile_MergesAndPersists(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	sess, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)

	name := "alice2"
	pic := "https://example.com/a.png"
	updated, err := m.UpdateProfile(ctx, ProfilePatch{Username: &name, ProfilePicture: &pic})
	require.NoError(t, err)
	require.Equal(t, sess.ID, updated.ID)
	require.Equal(t, "alice2", updated.Username)
	require.Equal(t, pic, updated.ProfilePicture)

	var accounts []models.Account
	require.True(t, store.Get(ctx, "users", &accounts))
	require.Equal(t, "alice2", accounts[0].Username)
	require.Equal(t, "p1", accounts[0].Password, "untouched fields survive the merge")

	var persisted models.Session
	require.True(t, store.Get(ctx, "user", &persisted))
	require.Equal(t, updated, persisted)
}

func TestUpdateProfile_UsernameCollisionAllowed(t *testing.T) {
	// Uniqueness is checked at registration only; an update may collide.
	// This mirrors the observed behavior and is documented as a known gap.
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)
	_, err = m.Register(ctx, "bob", "p2")
	require.NoError(t, err)

	name := "alice"
	updated, err := m.UpdateProfile(ctx, ProfilePatch{Username: &name})
	require.NoError(t, err)
	require.Equal(t, "alice", updated.Username)
}

func TestPeers_ExcludesSelf(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	_, err := m.Register(ctx, "alice", "p1")
	require.NoError(t, err)
	bob, err := m.Register(ctx, "bob", "p2")
	require.NoError(t, err)

	peers, err := m.Peers(ctx)
	require.NoError(t, err)
	require.Len(t, peers, 1)
	require.Equal(t, "alice", peers[0].Username)

	_, err = m.Lookup(ctx, bob.Username)
	require.ErrorIs(t, err, common.ErrAccountNotFound, "the active account is not a peer")

	alice, err := m.Lookup(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", alice.Username)
}

func TestPeers_RequiresSession(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.Peers(context.Background())
	require.ErrorIs(t, err, common.ErrNoActiveSession)
}
