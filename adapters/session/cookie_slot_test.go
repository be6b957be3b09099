package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/penpot-ir/panel/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionAttrs = ports.SlotAttributes{
	MaxAge:   7 * 24 * time.Hour,
	Path:     "/",
	HTTPOnly: true,
	Secure:   true,
	SameSite: http.SameSiteLaxMode,
}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCookieSlot_Set(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/login", nil)

	NewCookieSlot(c).Set("penpot-session", "header.payload.sig", sessionAttrs)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "penpot-session", cookie.Name)
	assert.Equal(t, "header.payload.sig", cookie.Value)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestCookieSlot_Delete(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/logout", nil)

	NewCookieSlot(c).Delete("penpot-session", sessionAttrs)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "penpot-session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestCookieSlot_Get(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/admin", nil)
	c.Request.AddCookie(&http.Cookie{Name: "penpot-session", Value: "abc.def.ghi"})

	slot := NewCookieSlot(c)

	value, ok := slot.Get("penpot-session")
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", value)

	_, ok = slot.Get("other")
	assert.False(t, ok)
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot()

	_, ok := slot.Get("penpot-session")
	assert.False(t, ok)

	slot.Set("penpot-session", "first", sessionAttrs)
	slot.Set("penpot-session", "second", sessionAttrs)
	value, ok := slot.Get("penpot-session")
	assert.True(t, ok)
	assert.Equal(t, "second", value)

	attrs, ok := slot.Attributes("penpot-session")
	require.True(t, ok)
	assert.Equal(t, sessionAttrs, attrs)

	slot.Delete("penpot-session", sessionAttrs)
	slot.Delete("penpot-session", sessionAttrs)
	_, ok = slot.Get("penpot-session")
	assert.False(t, ok)
}
