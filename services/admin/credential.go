package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	localRepo "pathlab/database/repository/local"
	"pathlab/utils"

	"golang.org/x/crypto/bcrypt"
)

// StoredCredential keeps a bcrypt hash of the admin password in the local
// store. Until one is set the configured default password is accepted.
type StoredCredential struct {
	kv              localRepo.KeyValue
	defaultPassword string
}

func NewStoredCredential(kv localRepo.KeyValue, defaultPassword string) *StoredCredential {
	return &StoredCredential{kv: kv, defaultPassword: defaultPassword}
}

func (c *StoredCredential) Verify(ctx context.Context, password string) (bool, error) {
	hash, ok, err := c.kv.Get(ctx, utils.AdminPasswordKey)
	if err != nil {
		return false, fmt.Errorf("read admin credential: %w", err)
	}
	if !ok {
		if c.defaultPassword == "" {
			return false, nil
		}
		return subtle.ConstantTimeCompare([]byte(password), []byte(c.defaultPassword)) == 1, nil
	}
	err = bcrypt.CompareHashAndPassword(hash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// SetPassword stores a new password hash.
func (c *StoredCredential) SetPassword(ctx context.Context, password string) error {
	if password == "" {
		return ErrPasswordEmpty
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return c.kv.Set(ctx, utils.AdminPasswordKey, hash, 0)
}

func (c *StoredCredential) ChangePassword(ctx context.Context, newPassword, confirmPassword string) error {
	if newPassword == "" {
		return ErrPasswordEmpty
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	return c.SetPassword(ctx, newPassword)
}
