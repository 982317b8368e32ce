package usecase

import (
	"context"
	"testing"

	"github.com/tixgo/tixgo/internal/account/entity"
)

func TestLogin_Success(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "super-secret-1")

	out, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "avery@example.com",
		Password: "super-secret-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccessToken != "token-abc" {
		t.Fatalf("access token = %q, want the issued token", out.AccessToken)
	}
	if out.ExpiresIn != 15*60 {
		t.Fatalf("expires in = %d, want %d", out.ExpiresIn, 15*60)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "super-secret-1")

	_, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "avery@example.com",
		Password: "not-the-password",
	})
	if got := reasonOf(t, err); got != "INVALID_CREDENTIALS" {
		t.Fatalf("reason = %q, want INVALID_CREDENTIALS", got)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := newHarness(t)

	_, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever-pass",
	})
	if got := reasonOf(t, err); got != "INVALID_CREDENTIALS" {
		t.Fatalf("reason = %q, want INVALID_CREDENTIALS", got)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	h := newHarness(t)
	user := h.seedUser("avery@example.com", "super-secret-1")
	user.Status = entity.UserStatusBanned

	_, err := h.uc.Login(context.Background(), LoginInput{
		Email:    "avery@example.com",
		Password: "super-secret-1",
	})
	if got := reasonOf(t, err); got != "INVALID_CREDENTIALS" {
		t.Fatalf("reason = %q, want INVALID_CREDENTIALS", got)
	}
}
