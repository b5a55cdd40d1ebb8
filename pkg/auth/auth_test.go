package auth_test

import (
	"testing"

	"github.com/aamirkhan2478/elite-market-backend/pkg/auth"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := auth.GenerateToken("64a1f0c2e4b0a1b2c3d4e5f6", true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "64a1f0c2e4b0a1b2c3d4e5f6" {
		t.Errorf("unexpected user id: %s", claims.UserID)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim to survive the round trip")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	if _, err := auth.ValidateToken("not.a.jwt"); err == nil {
		t.Error("expected garbage token to fail")
	}
}

func TestValidateRejectsTampering(t *testing.T) {
	token, err := auth.GenerateToken("64a1f0c2e4b0a1b2c3d4e5f6", false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := auth.ValidateToken(token + "x"); err == nil {
		t.Error("expected tampered token to fail")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("Secret@123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "Secret@123" {
		t.Fatal("password stored in the clear")
	}
	if !auth.CheckPassword(hash, "Secret@123") {
		t.Error("expected matching password to verify")
	}
	if auth.CheckPassword(hash, "WrongPass@1") {
		t.Error("expected wrong password to fail")
	}
}
