package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/penpot-ir/panel/core"
	"github.com/penpot-ir/panel/ports"
	"go.uber.org/zap"
)

// AuthService verifies email and password credentials
type AuthService struct {
	store  ports.CredentialStore
	hasher ports.PasswordHasher
	logger *zap.Logger

	// compared against when no usable account exists so every failure costs one hash check
	dummyHash string
}

// NewAuthService creates a new authentication service
func NewAuthService(store ports.CredentialStore, hasher ports.PasswordHasher, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &AuthService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}

	if hash, err := hasher.Hash("penpot-panel-unknown-account"); err == nil {
		s.dummyHash = hash
	} else {
		logger.Warn("failed to prepare dummy password hash", zap.Error(err))
	}

	return s
}

// Authenticate returns the identity for email when password matches an active account.
// Every credential mismatch yields core.ErrAuthenticationFailed; any other error is internal.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (core.Identity, error) {
	if email == "" || password == "" {
		return core.Identity{}, core.ErrValidation
	}

	record, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return core.Identity{}, fmt.Errorf("failed to look up credentials: %w", err)
	}

	if record == nil || !record.IsActive {
		s.burnHashCheck(password)
		s.logger.Info("login rejected", zap.String("email", email), zap.Bool("known", record != nil))
		return core.Identity{}, core.ErrAuthenticationFailed
	}

	ok, err := s.hasher.Verify(password, record.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unusable", zap.Int64("user_id", record.ID), zap.Error(err))
		return core.Identity{}, core.ErrAuthenticationFailed
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("email", email), zap.Bool("known", true))
		return core.Identity{}, core.ErrAuthenticationFailed
	}

	if !record.Role.Valid() {
		s.logger.Error("account has an unknown role", zap.Int64("user_id", record.ID), zap.String("role", string(record.Role)))
		return core.Identity{}, core.ErrAuthenticationFailed
	}

	return record.Identity(), nil
}

func (s *AuthService) burnHashCheck(password string) {
	if s.dummyHash == "" {
		return
	}
	_, _ = s.hasher.Verify(password, s.dummyHash)
}
