package tokenizer

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/penpot-ir/panel/core"
)

// UserClaim is the identity object nested under the "user" claim
type UserClaim struct {
	ID    int64     `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  core.Role `json:"role"`
}

// SessionClaims combines standard claims with the session identity
type SessionClaims struct {
	jwt.RegisteredClaims
	User UserClaim `json:"user"`
}

func newUserClaim(identity core.Identity) UserClaim {
	return UserClaim{
		ID:    identity.ID,
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}
}

func (u UserClaim) identity() core.Identity {
	return core.Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
