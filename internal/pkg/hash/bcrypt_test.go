package hash

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHashAndVerify(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "pepper")

	hashed, err := h.Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if !h.Verify(string(hashed), "s3cret-password") {
		t.Fatalf("expected hash to verify against original plaintext")
	}
	if h.Verify(string(hashed), "wrong-password") {
		t.Fatalf("expected verify to fail for a different plaintext")
	}
}

func TestBcryptHashIsSalted(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost, "")

	first, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash first: %v", err)
	}
	second, err := h.Hash("same-input")
	if err != nil {
		t.Fatalf("hash second: %v", err)
	}

	if string(first) == string(second) {
		t.Fatalf("expected two hashes of the same input to differ")
	}
	if !h.Verify(string(first), "same-input") || !h.Verify(string(second), "same-input") {
		t.Fatalf("expected both hashes to verify")
	}
}

func TestBcryptPepperChangesVerification(t *testing.T) {
	withPepper := NewBcrypt(bcrypt.MinCost, "pepper-a")
	hashed, err := withPepper.Hash("password")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	otherPepper := NewBcrypt(bcrypt.MinCost, "pepper-b")
	if otherPepper.Verify(string(hashed), "password") {
		t.Fatalf("expected verify to fail with a different pepper")
	}
}
