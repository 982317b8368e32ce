package usecase

import (
	"context"
	"sync"
	"testing"
	"time"
)

func (h *harness) issueOtp(t *testing.T, email string) {
	t.Helper()
	if err := h.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: email}); err != nil {
		t.Fatalf("failed to issue otp: %v", err)
	}
}

func TestPasswordReset_NoActiveToken(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")

	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "OTP_INVALID" {
		t.Fatalf("reason = %q, want OTP_INVALID", got)
	}
}

func TestPasswordReset_ExpiredTokenInvisible(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")
	h.issueOtp(t, "avery@example.com")

	h.clock.now = h.clock.now.Add(5*time.Minute + time.Second)

	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "OTP_INVALID" {
		t.Fatalf("reason = %q, want OTP_INVALID", got)
	}
}

func TestPasswordReset_IncorrectCodeCountsAttempt(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")
	h.issueOtp(t, "avery@example.com")

	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "000000",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "OTP_INCORRECT" {
		t.Fatalf("reason = %q, want OTP_INCORRECT", got)
	}

	if got := h.repo.activeTokens()[0].AttemptCount; got != 1 {
		t.Fatalf("attempt count = %d, want 1", got)
	}
}

func TestPasswordReset_LockAfterMaxAttempts(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")
	h.issueOtp(t, "avery@example.com")

	wrong := PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "000000",
		NewPassword: "brand-new-pass",
	}
	for i := 0; i < 3; i++ {
		err := h.uc.PasswordReset(context.Background(), wrong)
		if got := reasonOf(t, err); got != "OTP_INCORRECT" {
			t.Fatalf("attempt %d: reason = %q, want OTP_INCORRECT", i+1, got)
		}
	}

	// the correct code is refused once the cap is reached
	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "OTP_LOCKED" {
		t.Fatalf("reason = %q, want OTP_LOCKED", got)
	}

	if h.repo.users["avery@example.com"].Password != "h:old-password" {
		t.Fatal("password must not change on a locked token")
	}
}

func TestPasswordReset_SuccessConsumesToken(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")
	h.issueOtp(t, "avery@example.com")

	in := PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-pass",
	}
	if err := h.uc.PasswordReset(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := h.repo.users["avery@example.com"].Password; got != "h:brand-new-pass" {
		t.Fatalf("stored password = %q, want hash of new password", got)
	}
	if len(h.repo.activeTokens()) != 0 {
		t.Fatal("token must be consumed on success")
	}

	// verify-once: the same code is dead now
	err := h.uc.PasswordReset(context.Background(), in)
	if got := reasonOf(t, err); got != "OTP_INVALID" {
		t.Fatalf("reason = %q, want OTP_INVALID", got)
	}
}

func TestPasswordReset_ConcurrentWrongGuessesHonorCap(t *testing.T) {
	h := newHarness(t)
	h.seedUser("avery@example.com", "old-password")
	h.issueOtp(t, "avery@example.com")

	const guesses = 10
	results := make(chan error, guesses)

	var wg sync.WaitGroup
	for i := 0; i < guesses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- h.uc.PasswordReset(context.Background(), PasswordResetInput{
				Email:       "avery@example.com",
				Otp:         "000000",
				NewPassword: "brand-new-pass",
			})
		}()
	}
	wg.Wait()
	close(results)

	var incorrect, locked int
	for err := range results {
		switch got := reasonOf(t, err); got {
		case "OTP_INCORRECT":
			incorrect++
		case "OTP_LOCKED":
			locked++
		default:
			t.Fatalf("unexpected reason %q", got)
		}
	}

	if incorrect != 3 {
		t.Fatalf("%d guesses were compared, want exactly max_attempt (3)", incorrect)
	}
	if locked != guesses-3 {
		t.Fatalf("%d guesses reported locked, want %d", locked, guesses-3)
	}
	if got := h.hash.verifyCalls(); got != 3 {
		t.Fatalf("code comparisons performed = %d, want 3", got)
	}
	if got := h.repo.activeTokens()[0].AttemptCount; got != 3 {
		t.Fatalf("attempt count = %d, want 3", got)
	}

	// the cap holds for the correct code too
	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "123456",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "OTP_LOCKED" {
		t.Fatalf("reason = %q, want OTP_LOCKED", got)
	}
}

func TestPasswordReset_InvalidInput(t *testing.T) {
	h := newHarness(t)

	err := h.uc.PasswordReset(context.Background(), PasswordResetInput{
		Email:       "avery@example.com",
		Otp:         "12ab56",
		NewPassword: "brand-new-pass",
	})
	if got := reasonOf(t, err); got != "INVALID_INPUT" {
		t.Fatalf("reason = %q, want INVALID_INPUT", got)
	}
}
