package jwt

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubUUID struct{ id string }

func (g stubUUID) Generate() string { return g.id }

func testSecret() []byte {
	return bytes.Repeat([]byte("k"), 64)
}

func newTestJWT(t *testing.T, now time.Time) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:     testSecret(),
		Issuer:     "tixgo",
		Audiences:  []string{"tixgo-api"},
		TTLMinutes: 15 * time.Minute,
		Clock:      stubClock{now: now},
		UUID:       stubUUID{id: "jti-1"},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	return j
}

func TestNewHS512RejectsShortSecret(t *testing.T) {
	_, err := NewHS512(Config{Secret: []byte("too-short")})
	if !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
	}
}

func TestSymmetricGenerateVerify(t *testing.T) {
	j := newTestJWT(t, time.Now())

	token, err := j.Generate(42, "user@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	clm, err := j.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if clm.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", clm.UserID)
	}
	if clm.UserEmail != "user@example.com" {
		t.Fatalf("expected email user@example.com, got %q", clm.UserEmail)
	}
	if clm.Role != "user" {
		t.Fatalf("expected role user, got %q", clm.Role)
	}
	if clm.Issuer != "tixgo" {
		t.Fatalf("expected issuer tixgo, got %q", clm.Issuer)
	}
}

func TestSymmetricVerifyExpired(t *testing.T) {
	j := newTestJWT(t, time.Now().Add(-2*time.Hour))

	token, err := j.Generate(42, "user@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := j.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestSymmetricVerifyTamperedToken(t *testing.T) {
	j := newTestJWT(t, time.Now())

	token, err := j.Generate(42, "user@example.com", "user")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	other, err := NewHS512(Config{
		Secret:     bytes.Repeat([]byte("x"), 64),
		Issuer:     "tixgo",
		Audiences:  []string{"tixgo-api"},
		TTLMinutes: 15 * time.Minute,
		Clock:      stubClock{now: time.Now()},
		UUID:       stubUUID{id: "jti-2"},
	})
	if err != nil {
		t.Fatalf("new hs512: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Fatalf("expected verification to fail for a different secret")
	}
}
