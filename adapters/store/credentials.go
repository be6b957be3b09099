package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/penpot-ir/panel/core"
)

const userColumns = "id, email, password, name, role, is_active, created_at, updated_at"

// FindByEmail returns the user whose email matches exactly
func (s *SQLStore) FindByEmail(ctx context.Context, email string) (*core.CredentialRecord, error) {
	var record core.CredentialRecord
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE email = ? LIMIT 1")

	if err := s.db.GetContext(ctx, &record, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	return &record, nil
}

// FindUser returns the user with the given id
func (s *SQLStore) FindUser(ctx context.Context, id int64) (*core.CredentialRecord, error) {
	var record core.CredentialRecord
	query := s.db.Rebind("SELECT " + userColumns + " FROM users WHERE id = ?")

	if err := s.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &record, nil
}

// CreateUser inserts record and fills in its id and timestamps
func (s *SQLStore) CreateUser(ctx context.Context, record *core.CredentialRecord) error {
	return insertUser(ctx, s.db, record)
}

func insertUser(ctx context.Context, q sqlx.ExtContext, record *core.CredentialRecord) error {
	if !record.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", core.ErrValidation, record.Role)
	}

	now := time.Now().UTC().Truncate(time.Second)
	record.CreatedAt = now
	record.UpdatedAt = now

	query := q.Rebind(`INSERT INTO users (email, password, name, role, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	err := q.QueryRowxContext(ctx, query,
		record.Email, record.PasswordHash, record.Name, string(record.Role),
		record.IsActive, record.CreatedAt, record.UpdatedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to create user %q: %w", record.Email, err)
	}

	return nil
}
