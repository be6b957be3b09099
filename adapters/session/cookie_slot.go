package session

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel/ports"
)

// CookieSlot implements the SessionSlot interface over the cookies of a gin request
type CookieSlot struct {
	c *gin.Context
}

// NewCookieSlot creates a slot bound to the current request
func NewCookieSlot(c *gin.Context) *CookieSlot {
	return &CookieSlot{c: c}
}

// Get reads the named cookie from the request
func (s *CookieSlot) Get(name string) (string, bool) {
	value, err := s.c.Cookie(name)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// Set writes the named cookie to the response
func (s *CookieSlot) Set(name, value string, attrs ports.SlotAttributes) {
	s.c.SetSameSite(attrs.SameSite)
	s.c.SetCookie(name, value, int(attrs.MaxAge/time.Second), attrs.Path, "", attrs.Secure, attrs.HTTPOnly)
}

// Delete expires the named cookie on the client
func (s *CookieSlot) Delete(name string, attrs ports.SlotAttributes) {
	s.c.SetSameSite(attrs.SameSite)
	s.c.SetCookie(name, "", -1, attrs.Path, "", attrs.Secure, attrs.HTTPOnly)
}
