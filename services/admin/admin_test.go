package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	localRepo "pathlab/database/repository/local"
)

func newKV(t *testing.T) localRepo.KeyValue {
	t.Helper()
	kv, err := localRepo.NewFileStore("")
	if err != nil {
		t.Fatal(err)
	}
	return kv
}

func TestStoredCredentialDefaultAndChange(t *testing.T) {
	ctx := context.Background()
	cred := NewStoredCredential(newKV(t), "admin123")

	if ok, _ := cred.Verify(ctx, "admin123"); !ok {
		t.Fatal("default password should verify")
	}
	if ok, _ := cred.Verify(ctx, "wrong"); ok {
		t.Fatal("wrong password verified")
	}

	if err := cred.ChangePassword(ctx, "", ""); !errors.Is(err, ErrPasswordEmpty) {
		t.Fatalf("empty = %v", err)
	}
	if err := cred.ChangePassword(ctx, "n3w", "other"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("mismatch = %v", err)
	}
	if err := cred.ChangePassword(ctx, "n3w", "n3w"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}

	if ok, _ := cred.Verify(ctx, "admin123"); ok {
		t.Fatal("default must stop working once a password is stored")
	}
	if ok, _ := cred.Verify(ctx, "n3w"); !ok {
		t.Fatal("new password should verify")
	}
}

func TestAuthenticatorLifecycle(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	auth := NewAuthenticator(NewStoredCredential(kv, "admin123"), kv, "test-secret", time.Hour, nil)

	if _, err := auth.Login(ctx, "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("Login(wrong) = %v", err)
	}

	session, err := auth.Login(ctx, "admin123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.Token == "" || !session.ExpiresAt.After(time.Now()) {
		t.Fatalf("session = %+v", session)
	}

	claims, err := auth.Authenticate(ctx, session.Token)
	if err != nil || claims.Role != "admin" {
		t.Fatalf("Authenticate = %+v, %v", claims, err)
	}

	if err := auth.Logout(ctx, session.Token); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := auth.Authenticate(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Authenticate after logout = %v", err)
	}
}

func TestAuthenticateRejectsForeignToken(t *testing.T) {
	ctx := context.Background()
	kv := newKV(t)
	issuer := NewAuthenticator(NewStoredCredential(kv, "admin123"), kv, "secret-a", time.Hour, nil)
	verifier := NewAuthenticator(NewStoredCredential(kv, "admin123"), kv, "secret-b", time.Hour, nil)

	session, err := issuer.Login(ctx, "admin123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := verifier.Authenticate(ctx, session.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Authenticate = %v", err)
	}
	if _, err := verifier.Authenticate(ctx, "garbage"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Authenticate(garbage) = %v", err)
	}
}
