package usecase

import (
	"context"
	"testing"

	"github.com/tixgo/tixgo/internal/account/entity"
)

func TestRegister_CreatesActiveUser(t *testing.T) {
	h := newHarness(t)

	err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "Avery@Example.com",
		Password: "super-secret-1",
		FullName: "Avery Brooks",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, ok := h.repo.users["avery@example.com"]
	if !ok {
		t.Fatal("user was not created under the normalized email")
	}
	if user.Status != entity.UserStatusActive {
		t.Fatalf("status = %v, want active", user.Status)
	}
	if user.Role != entity.RoleUser {
		t.Fatalf("role = %q, want %q", user.Role, entity.RoleUser)
	}
	if user.Password != "h:super-secret-1" {
		t.Fatalf("stored password = %q, want the hash", user.Password)
	}
	if len(h.queue.msgs) != 1 {
		t.Fatalf("queued %d emails, want 1 welcome email", len(h.queue.msgs))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "whatever-pass")

	err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "avery@example.com",
		Password: "super-secret-1",
		FullName: "Avery Brooks",
	})
	if got := reasonOf(t, err); got != "USER_EXISTS" {
		t.Fatalf("reason = %q, want USER_EXISTS", got)
	}
}

func TestRegister_InvalidInput(t *testing.T) {
	h := newHarness(t)

	err := h.uc.Register(context.Background(), RegisterInput{
		Email:    "avery@example.com",
		Password: "short",
		FullName: "Avery Brooks",
	})
	if got := reasonOf(t, err); got != "INVALID_INPUT" {
		t.Fatalf("reason = %q, want INVALID_INPUT", got)
	}
	if len(h.repo.users) != 0 {
		t.Fatal("no user may be created on invalid input")
	}
}
