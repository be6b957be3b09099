package ports

import (
	"net/http"
	"time"
)

// SlotAttributes are the transport properties of a session slot
type SlotAttributes struct {
	MaxAge   time.Duration
	Path     string
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

// SessionSlot is a per-client named slot that carries the session token
// between requests.
type SessionSlot interface {
	Get(name string) (string, bool)
	Set(name, value string, attrs SlotAttributes)
	Delete(name string, attrs SlotAttributes)
}
