// Package session owns the registered-accounts collection and the single
// active-session record.
package session

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"

	"github.com/dmitrijs2005/chatkeeper/internal/common"
	"github.com/dmitrijs2005/chatkeeper/internal/logging"
	"github.com/dmitrijs2005/chatkeeper/internal/models"
	"github.com/dmitrijs2005/chatkeeper/internal/storage"
)

const (
	usersKey   = "users"
	sessionKey = "user"
)

// ProfilePatch carries the updatable account fields. Nil means "leave as is".
type ProfilePatch struct {
	Username       *string
	ProfilePicture *string
}

// Manager is the only writer of the accounts collection and the session
// record. Every mutation takes the manager lock and performs a full
// read-modify-write of its key, so operations observe a total order equal
// to call order.
type Manager struct {
	store *storage.Store
	log   logging.Logger

	mu      sync.Mutex
	current *models.Session
}

// NewManager constructs a Manager and re-hydrates the persisted session,
// if any, so a restarted process stays logged in.
func NewManager(ctx context.Context, store *storage.Store, log logging.Logger) *Manager {
	m := &Manager{store: store, log: log.With("component", "session")}

	var s models.Session
	if store.Get(ctx, sessionKey, &s) {
		m.current = &s
		m.log.Info(ctx, "session restored", "username", s.Username)
	}
	return m
}

// Current returns the active session, if any.
func (m *Manager) Current() (models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return models.Session{}, false
	}
	return *m.current, true
}

// Register creates a new account, makes it the active session and returns
// its public view. Usernames are unique, compared case-sensitively.
func (m *Manager) Register(ctx context.Context, username, password string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	accounts := m.readAccounts(ctx)
	for _, a := range accounts {
		if a.Username == username {
			return models.Session{}, common.ErrDuplicateUsername
		}
	}

	account := models.Account{
		ID:        models.NewID("user"),
		Username:  username,
		Password:  password,
		CreatedAt: models.Timestamp(time.Now()),
	}
	accounts = append(accounts, account)
	m.store.Set(ctx, usersKey, accounts)

	sess := account.SessionView()
	m.setSession(ctx, sess)
	m.log.Info(ctx, "account registered", "username", username)
	return sess, nil
}

// Login authenticates by exact username/password match and makes the
// matching account the active session.
func (m *Manager) Login(ctx context.Context, username, password string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.readAccounts(ctx) {
		if a.Username == username &&
			subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) == 1 {
			sess := a.SessionView()
			m.setSession(ctx, sess)
			m.log.Info(ctx, "login", "username", username)
			return sess, nil
		}
	}
	return models.Session{}, common.ErrInvalidCredentials
}

// Logout clears the persisted and in-memory session. Safe to call when no
// session is active.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.Remove(ctx, sessionKey)
	m.current = nil
}

// UpdateProfile merges patch into the active account and the session
// record, persists both and returns the updated session view.
//
// Username uniqueness is deliberately not re-checked here: the observed
// behavior allows an update to collide with an existing username.
func (m *Manager) UpdateProfile(ctx context.Context, patch ProfilePatch) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return models.Session{}, common.ErrNoActiveSession
	}

	accounts := m.readAccounts(ctx)
	idx := -1
	for i, a := range accounts {
		if a.ID == m.current.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		// Session points at an account the collection no longer holds:
		// a consistency fault, not a normal outcome.
		return models.Session{}, common.ErrAccountNotFound
	}

	if patch.Username != nil {
		accounts[idx].Username = *patch.Username
	}
	if patch.ProfilePicture != nil {
		accounts[idx].ProfilePicture = *patch.ProfilePicture
	}
	m.store.Set(ctx, usersKey, accounts)

	sess := accounts[idx].SessionView()
	m.setSession(ctx, sess)
	m.log.Info(ctx, "profile updated", "username", sess.Username)
	return sess, nil
}

// Peers lists every registered account except the active one, as public
// views. Requires an active session.
func (m *Manager) Peers(ctx context.Context) ([]models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return nil, common.ErrNoActiveSession
	}

	var peers []models.Session
	for _, a := range m.readAccounts(ctx) {
		if a.ID != m.current.ID {
			peers = append(peers, a.SessionView())
		}
	}
	return peers, nil
}

// Lookup finds a peer by exact username. The active account itself is not
// a peer and cannot be looked up.
func (m *Manager) Lookup(ctx context.Context, username string) (models.Session, error) {
	peers, err := m.Peers(ctx)
	if err != nil {
		return models.Session{}, err
	}
	for _, p := range peers {
		if p.Username == username {
			return p, nil
		}
	}
	return models.Session{}, common.ErrAccountNotFound
}

func (m *Manager) readAccounts(ctx context.Context) []models.Account {
	var accounts []models.Account
	m.store.Get(ctx, usersKey, &accounts)
	return accounts
}

func (m *Manager) setSession(ctx context.Context, s models.Session) {
	m.current = &s
	m.store.Set(ctx, sessionKey, s)
}
