package core

import "time"

// SessionLifetime is the default validity window of an issued session.
const SessionLifetime = 7 * 24 * time.Hour

// Role is the authorization class of an identity
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Identity is the projection of an authenticated principal carried inside a session
type Identity struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// CredentialRecord is a persisted user row as seen by the authenticator
type CredentialRecord struct {
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         Role      `db:"role" json:"role"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Identity projects the record into the fields a session carries
func (r *CredentialRecord) Identity() Identity {
	return Identity{
		ID:    r.ID,
		Email: r.Email,
		Name:  r.Name,
		Role:  r.Role,
	}
}
