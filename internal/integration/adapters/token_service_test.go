package adapters

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("token already expired: %v", claims.ExpiresAt)
	}
}

func TestTokenServiceRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.GenerateAccessToken(context.Background(), uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := verifier.ValidateAccessToken(context.Background(), token); err == nil {
		t.Fatal("expected validation error for token signed with a different secret")
	}
}

func TestTokenServiceRejectsExpiredToken(t *testing.T) {
	// Built directly to issue an already-expired token; the constructor
	// floors non-positive durations.
	svc := &tokenService{secret: []byte("test-secret"), duration: -time.Minute}

	token, err := svc.GenerateAccessToken(context.Background(), uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := svc.ValidateAccessToken(context.Background(), token); err == nil {
		t.Fatal("expected validation error for expired token")
	}
}

func TestTokenServiceRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	if _, err := svc.ValidateAccessToken(context.Background(), "not-a-jwt"); err == nil {
		t.Fatal("expected validation error for malformed token")
	}
}

func TestPasswordServiceHashAndVerify(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.HashPassword("correct-horse-battery")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct-horse-battery" {
		t.Fatal("password stored in plain text")
	}

	if err := svc.VerifyPassword(hash, "correct-horse-battery"); err != nil {
		t.Errorf("VerifyPassword rejected correct password: %v", err)
	}
	if err := svc.VerifyPassword(hash, "wrong-password"); err == nil {
		t.Error("VerifyPassword accepted wrong password")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	svc := NewPasswordService()

	if err := svc.ValidatePasswordStrength("short"); err == nil {
		t.Error("expected error for short password")
	}
	if err := svc.ValidatePasswordStrength(strings.Repeat("p", 73)); err == nil {
		t.Error("expected error beyond the bcrypt input limit")
	}
	if err := svc.ValidatePasswordStrength("longenough"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
