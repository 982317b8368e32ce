package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Email       string `validate:"required,email"`
	Otp         string `validate:"required,numeric,len=6"`
	NewPassword string `validate:"required,password"`
}

// PasswordReset verifies the one-time code and replaces the user's password.
//
// Outcomes, in order of evaluation: no active token, attempt cap reached,
// code mismatch (counts an attempt), then success. The lock check, the code
// comparison and the attempt increment run as one unit under the token's row
// lock, so concurrent guesses cannot slip past the cap. The token is consumed
// and the password replaced in one transaction; losing that race reports the
// same outcome as a missing token.
func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	now := s.clock.Now()
	token, err := s.repoDB.VerifyOtpAttempt(ctx, in.Email, entity.OtpTypeResetPassword, now,
		func(codeHash string) bool {
			return s.bcrypt.Verify(codeHash, in.Otp)
		})
	switch {
	case errors.Is(err, goerror.ErrNotFound):
		return errOtpInvalid()
	case errors.Is(err, entity.ErrOtpLocked):
		return errOtpLocked()
	case errors.Is(err, entity.ErrOtpMismatch):
		slog.WarnContext(ctx, "incorrect otp code", "otp_id", token.ID, "attempt_count", token.AttemptCount)
		return goerror.NewBusinessReason("Incorrect OTP", "OTP_INCORRECT", goerror.CodeUnauthorized)
	case err != nil:
		slog.ErrorContext(ctx, "failed to repo verify otp attempt", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user vanished during password reset", "email", in.Email)
		return goerror.NewBusinessReason("User not found", "USER_NOT_FOUND", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	newHash, err := s.bcrypt.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	err = s.repoDB.ConsumeOtpResetPassword(ctx, token.ID, user.ID, string(newHash), now)
	if errors.Is(err, goerror.ErrNotFound) {
		// someone consumed the token between verify and commit
		return errOtpInvalid()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume otp and reset password", "otp_id", token.ID, "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}

func errOtpInvalid() error {
	return goerror.NewBusinessReason("Invalid or expired OTP", "OTP_INVALID", goerror.CodeUnauthorized)
}

func errOtpLocked() error {
	return goerror.NewBusinessReason("Maximum OTP attempts exceeded. Please request a new code.", "OTP_LOCKED", goerror.CodeUnauthorized)
}
