package tokenizer

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/penpot-ir/panel/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base64URLAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

var testIdentity = core.Identity{
	ID:    7,
	Email: "user@penpot.ir",
	Name:  "کاربر تست",
	Role:  core.RoleUser,
}

func newTestTokenizer(t *testing.T, secret string) *JWTTokenizer {
	t.Helper()
	tk, err := NewJWTTokenizer([]byte(secret), nil)
	require.NoError(t, err)
	return tk
}

func TestNewJWTTokenizer_RejectsEmptySecret(t *testing.T) {
	tk, err := NewJWTTokenizer(nil, nil)
	assert.Nil(t, tk)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestJWTTokenizer_RoundTrip(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")

	for _, identity := range []core.Identity{
		testIdentity,
		{ID: 1, Email: "admin@penpot.ir", Name: "مدیر سیستم", Role: core.RoleAdmin},
	} {
		token, err := tk.IdentityToToken(identity, time.Now().Add(core.SessionLifetime))
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		got, ok := tk.TokenToIdentity(token)
		require.True(t, ok)
		assert.Equal(t, identity, got)
	}
}

func TestJWTTokenizer_ClaimsLayout(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	token, err := tk.IdentityToToken(testIdentity, expiresAt)
	require.NoError(t, err)

	payload, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	require.NoError(t, err)

	var claims map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &claims))

	user, ok := claims["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), user["id"])
	assert.Equal(t, "user@penpot.ir", user["email"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, float64(expiresAt.Unix()), claims["exp"])
	assert.NotEmpty(t, claims["jti"])
	assert.NotContains(t, string(payload), "password")
}

func TestJWTTokenizer_Expired(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")

	token, err := tk.IdentityToToken(testIdentity, time.Now().Add(-time.Second))
	require.NoError(t, err)

	_, ok := tk.TokenToIdentity(token)
	assert.False(t, ok)
}

func TestJWTTokenizer_ExpiresAfterWindow(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")
	issued := time.Now()

	token, err := tk.IdentityToToken(testIdentity, issued.Add(core.SessionLifetime))
	require.NoError(t, err)

	tk.now = func() time.Time { return issued.Add(core.SessionLifetime - time.Minute) }
	_, ok := tk.TokenToIdentity(token)
	assert.True(t, ok)

	tk.now = func() time.Time { return issued.Add(core.SessionLifetime + time.Minute) }
	_, ok = tk.TokenToIdentity(token)
	assert.False(t, ok)
}

func TestJWTTokenizer_TamperedSignature(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")

	token, err := tk.IdentityToToken(testIdentity, time.Now().Add(time.Hour))
	require.NoError(t, err)

	lastDot := strings.LastIndex(token, ".")
	signature := token[lastDot+1:]
	for i := range signature {
		idx := strings.IndexByte(base64URLAlphabet, signature[i])
		require.GreaterOrEqual(t, idx, 0)

		flipped := []byte(signature)
		flipped[i] = base64URLAlphabet[(idx+16)%64]

		_, ok := tk.TokenToIdentity(token[:lastDot+1] + string(flipped))
		assert.False(t, ok, "signature position %d", i)
	}
}

func TestJWTTokenizer_TamperedPayload(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")

	token, err := tk.IdentityToToken(testIdentity, time.Now().Add(time.Hour))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	escalated := strings.Replace(string(payload), `"role":"user"`, `"role":"admin"`, 1)
	require.NotEqual(t, string(payload), escalated)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(escalated))

	_, ok := tk.TokenToIdentity(strings.Join(parts, "."))
	assert.False(t, ok)
}

func TestJWTTokenizer_WrongSecret(t *testing.T) {
	issuer := newTestTokenizer(t, "secret-one")
	verifier := newTestTokenizer(t, "secret-two")

	token, err := issuer.IdentityToToken(testIdentity, time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, ok := verifier.TokenToIdentity(token)
	assert.False(t, ok)
}

func TestJWTTokenizer_RejectsForeignTokens(t *testing.T) {
	tk := newTestTokenizer(t, "test-secret")
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, key interface{}, claims jwt.Claims) string {
		token, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return token
	}

	cases := map[string]string{
		"empty":    "",
		"garbage":  "not-a-token",
		"two dots": "a.b.c",
		"alg none": sign(jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
			User:             newUserClaim(testIdentity),
		}),
		"HS512": sign(jwt.SigningMethodHS512, []byte("test-secret"), SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
			User:             newUserClaim(testIdentity),
		}),
		"missing exp": sign(jwt.SigningMethodHS256, []byte("test-secret"), SessionClaims{
			User: newUserClaim(testIdentity),
		}),
		"unknown role": sign(jwt.SigningMethodHS256, []byte("test-secret"), SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
			User:             UserClaim{ID: 3, Email: "x@penpot.ir", Role: "superuser"},
		}),
		"missing user": sign(jwt.SigningMethodHS256, []byte("test-secret"), jwt.RegisteredClaims{ExpiresAt: exp}),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			identity, ok := tk.TokenToIdentity(token)
			assert.False(t, ok)
			assert.Equal(t, core.Identity{}, identity)
		})
	}
}
