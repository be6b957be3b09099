package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/penpot-ir/panel/core"
	"go.uber.org/zap"
)

var ErrEmptySecret = errors.New("signing secret must not be empty")

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs
type JWTTokenizer struct {
	secret []byte
	logger *zap.Logger
	now    func() time.Time
}

// NewJWTTokenizer creates a new JWT tokenizer signing with secret
func NewJWTTokenizer(secret []byte, logger *zap.Logger) (*JWTTokenizer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &JWTTokenizer{
		secret: secret,
		logger: logger,
		now:    time.Now,
	}, nil
}

// IdentityToToken signs identity into a session token valid until expiresAt
func (j *JWTTokenizer) IdentityToToken(identity core.Identity, expiresAt time.Time) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(j.now()),
		},
		User: newUserClaim(identity),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// TokenToIdentity verifies a session token and returns the identity it carries
func (j *JWTTokenizer) TokenToIdentity(tokenStr string) (core.Identity, bool) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		j.logger.Debug("session token rejected", zap.Error(err))
		return core.Identity{}, false
	}

	if !token.Valid {
		j.logger.Debug("session token rejected", zap.Error(core.ErrInvalidToken))
		return core.Identity{}, false
	}

	identity := claims.User.identity()
	if identity.ID <= 0 || !identity.Role.Valid() {
		j.logger.Debug("session token carries an unusable identity",
			zap.Int64("user_id", identity.ID),
			zap.String("role", string(identity.Role)))
		return core.Identity{}, false
	}

	return identity, true
}
