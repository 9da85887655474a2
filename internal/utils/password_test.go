package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_VerifyRoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "Secret123" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !VerifyPassword(hash, "Secret123") {
		t.Fatal("expected correct password to verify")
	}
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("Secret123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if VerifyPassword(hash, "secret123") {
		t.Fatal("expected wrong password to fail verification")
	}
	if VerifyPassword(hash, "") {
		t.Fatal("expected empty password to fail verification")
	}
}
