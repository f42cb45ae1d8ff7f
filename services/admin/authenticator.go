package admin

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	localRepo "pathlab/database/repository/local"
	"pathlab/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Authenticator owns the admin login lifecycle. Each login issues a JWT
// whose id must also be present in the session store, so logout takes
// effect before the token expires.
type Authenticator struct {
	verifier CredentialVerifier
	sessions localRepo.KeyValue
	secret   []byte
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAuthenticator builds an Authenticator. An empty secret is replaced by a
// random one, which invalidates tokens on restart.
func NewAuthenticator(verifier CredentialVerifier, sessions localRepo.KeyValue, secret string, ttl time.Duration, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("generate jwt secret: %v", err))
		}
		logger.Warn("JWT_SECRET not set, admin tokens will not survive a restart")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Authenticator{verifier: verifier, sessions: sessions, secret: key, ttl: ttl, logger: logger}
}

func (a *Authenticator) Login(ctx context.Context, password string) (Session, error) {
	ok, err := a.verifier.Verify(ctx, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrInvalidCredentials
	}

	jti := uuid.New().String()
	token, exp, err := utils.GenerateToken(a.secret, jti, "admin", a.ttl)
	if err != nil {
		return Session{}, fmt.Errorf("sign admin token: %w", err)
	}
	if err := a.sessions.Set(ctx, utils.AdminSessionPrefix+jti, []byte("true"), a.ttl); err != nil {
		return Session{}, fmt.Errorf("store admin session: %w", err)
	}
	a.logger.Info("Admin logged in", zap.String("session", jti))
	return Session{Token: token, ExpiresAt: exp}, nil
}

// Authenticate validates the token and checks the session is still open.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*utils.AdminClaims, error) {
	claims, err := utils.ValidateToken(a.secret, token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	_, ok, err := a.sessions.Get(ctx, utils.AdminSessionPrefix+claims.Id)
	if err != nil {
		return nil, fmt.Errorf("read admin session: %w", err)
	}
	if !ok {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// Logout closes the session behind token.
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(a.secret, token)
	if err != nil {
		return ErrUnauthorized
	}
	if err := a.sessions.Delete(ctx, utils.AdminSessionPrefix+claims.Id); err != nil {
		return fmt.Errorf("delete admin session: %w", err)
	}
	a.logger.Info("Admin logged out", zap.String("session", claims.Id))
	return nil
}
