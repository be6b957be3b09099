package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
)

// DefaultCookieName is the slot the session token travels in
const DefaultCookieName = "penpot-session"

// SessionOptions configures how sessions are issued
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// SessionManager issues, reads and clears sessions held in a client slot
type SessionManager struct {
	tokenizer ports.Tokenizer
	opts      SessionOptions
	now       func() time.Time
}

// NewSessionManager creates a new session manager
func NewSessionManager(tokenizer ports.Tokenizer, opts SessionOptions) *SessionManager {
	if opts.CookieName == "" {
		opts.CookieName = DefaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = core.SessionLifetime
	}

	return &SessionManager{
		tokenizer: tokenizer,
		opts:      opts,
		now:       time.Now,
	}
}

// Attributes returns the slot attributes every session write uses
func (m *SessionManager) Attributes() ports.SlotAttributes {
	return ports.SlotAttributes{
		MaxAge:   m.opts.TTL,
		Path:     "/",
		HTTPOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Establish mints a token for identity and stores it in slot, replacing any previous one
func (m *SessionManager) Establish(slot ports.SessionSlot, identity core.Identity) error {
	token, err := m.tokenizer.IdentityToToken(identity, m.now().Add(m.opts.TTL))
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}

	slot.Set(m.opts.CookieName, token, m.Attributes())
	return nil
}

// Current returns the identity of the session in slot, if it is valid
func (m *SessionManager) Current(slot ports.SessionSlot) (core.Identity, bool) {
	token, ok := slot.Get(m.opts.CookieName)
	if !ok {
		return core.Identity{}, false
	}
	return m.tokenizer.TokenToIdentity(token)
}

// Destroy removes the session from slot
func (m *SessionManager) Destroy(slot ports.SessionSlot) {
	attrs := m.Attributes()
	attrs.MaxAge = -1
	slot.Delete(m.opts.CookieName, attrs)
}

// RequireAuthenticated returns the current identity or core.ErrUnauthorized
func (m *SessionManager) RequireAuthenticated(slot ports.SessionSlot) (core.Identity, error) {
	identity, ok := m.Current(slot)
	if !ok {
		return core.Identity{}, core.ErrUnauthorized
	}
	return identity, nil
}

// RequireRole returns the current identity when it holds exactly role.
// On core.ErrForbidden the caller's identity is still returned.
func (m *SessionManager) RequireRole(slot ports.SessionSlot, role core.Role) (core.Identity, error) {
	identity, err := m.RequireAuthenticated(slot)
	if err != nil {
		return core.Identity{}, err
	}
	if identity.Role != role {
		return identity, core.ErrForbidden
	}
	return identity, nil
}
