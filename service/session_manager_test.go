package service

import (
	"net/http"
	"testing"
	"time"

	"github.com/penpot-ir/panel/adapters/session"
	"github.com/penpot-ir/panel/adapters/tokenizer"
	"github.com/penpot-ir/panel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminIdentity = core.Identity{ID: 1, Email: "admin@penpot.ir", Name: "مدیر سیستم", Role: core.RoleAdmin}
	userIdentity  = core.Identity{ID: 2, Email: "user@penpot.ir", Name: "کاربر تست", Role: core.RoleUser}
)

func newSessionManager(t *testing.T, secret string, opts SessionOptions) *SessionManager {
	t.Helper()
	tk, err := tokenizer.NewJWTTokenizer([]byte(secret), nil)
	require.NoError(t, err)
	return NewSessionManager(tk, opts)
}

func TestSessionManager_EstablishAndCurrent(t *testing.T) {
	m := newSessionManager(t, "test-secret", SessionOptions{})
	slot := session.NewMemorySlot()

	_, ok := m.Current(slot)
	assert.False(t, ok)

	require.NoError(t, m.Establish(slot, adminIdentity))

	identity, ok := m.Current(slot)
	require.True(t, ok)
	assert.Equal(t, adminIdentity, identity)

	attrs, ok := slot.Attributes(DefaultCookieName)
	require.True(t, ok)
	assert.Equal(t, 7*24*time.Hour, attrs.MaxAge)
	assert.Equal(t, "/", attrs.Path)
	assert.True(t, attrs.HTTPOnly)
	assert.False(t, attrs.Secure)
	assert.Equal(t, http.SameSiteLaxMode, attrs.SameSite)
}

func TestSessionManager_EstablishOverwrites(t *testing.T) {
	m := newSessionManager(t, "test-secret", SessionOptions{Secure: true})
	slot := session.NewMemorySlot()

	require.NoError(t, m.Establish(slot, adminIdentity))
	require.NoError(t, m.Establish(slot, userIdentity))

	identity, ok := m.Current(slot)
	require.True(t, ok)
	assert.Equal(t, userIdentity, identity)

	attrs, _ := slot.Attributes(DefaultCookieName)
	assert.True(t, attrs.Secure)
}

func TestSessionManager_Destroy(t *testing.T) {
	m := newSessionManager(t, "test-secret", SessionOptions{})
	slot := session.NewMemorySlot()

	m.Destroy(slot)
	_, ok := m.Current(slot)
	assert.False(t, ok)

	require.NoError(t, m.Establish(slot, userIdentity))
	m.Destroy(slot)
	m.Destroy(slot)

	_, ok = m.Current(slot)
	assert.False(t, ok)

	attrs, _ := slot.Attributes(DefaultCookieName)
	assert.Less(t, attrs.MaxAge, time.Duration(0))
}

func TestSessionManager_RejectsForeignToken(t *testing.T) {
	issuer := newSessionManager(t, "secret-one", SessionOptions{})
	verifier := newSessionManager(t, "secret-two", SessionOptions{})
	slot := session.NewMemorySlot()

	require.NoError(t, issuer.Establish(slot, adminIdentity))

	_, ok := verifier.Current(slot)
	assert.False(t, ok)

	_, err := verifier.RequireRole(slot, core.RoleAdmin)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestSessionManager_Expiry(t *testing.T) {
	m := newSessionManager(t, "test-secret", SessionOptions{TTL: time.Hour})
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	slot := session.NewMemorySlot()

	require.NoError(t, m.Establish(slot, adminIdentity))

	_, err := m.RequireAuthenticated(slot)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestSessionManager_RequireRole(t *testing.T) {
	m := newSessionManager(t, "test-secret", SessionOptions{})

	empty := session.NewMemorySlot()
	_, err := m.RequireAuthenticated(empty)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	_, err = m.RequireRole(empty, core.RoleUser)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	cases := []struct {
		who      core.Identity
		role     core.Role
		expected error
	}{
		{adminIdentity, core.RoleAdmin, nil},
		{adminIdentity, core.RoleUser, core.ErrForbidden},
		{userIdentity, core.RoleUser, nil},
		{userIdentity, core.RoleAdmin, core.ErrForbidden},
	}

	for _, c := range cases {
		slot := session.NewMemorySlot()
		require.NoError(t, m.Establish(slot, c.who))

		identity, err := m.RequireRole(slot, c.role)
		if c.expected == nil {
			assert.NoError(t, err)
		} else {
			assert.ErrorIs(t, err, c.expected)
		}
		assert.Equal(t, c.who, identity)

		identity, err = m.RequireAuthenticated(slot)
		assert.NoError(t, err)
		assert.Equal(t, c.who, identity)
	}
}
