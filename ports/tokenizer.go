package ports

import (
	"time"

	"github.com/penpot-ir/panel/core"
)

// Tokenizer converts between identities and signed session tokens
type Tokenizer interface {
	IdentityToToken(identity core.Identity, expiresAt time.Time) (string, error)

	// TokenToIdentity never explains a rejection; any failure yields false.
	TokenToIdentity(token string) (core.Identity, bool)
}

// PasswordHasher produces and checks salted one-way password hashes
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Verify returns core.ErrInvalidHashFormat when hash is not a hash it understands.
	Verify(password, hash string) (bool, error)
}
