package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
	"github.com/tixgo/tixgo/internal/pkg/mail"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

// PasswordForgot issues a one-time code for password reset and queues the
// email carrying it. Re-requesting replaces the previous active code, so at
// most one code per user is verifiable at any time.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "password reset requested for unavailable user", "email", in.Email)
		return goerror.NewBusinessReason("No account found with that email address", "EMAIL_NOT_FOUND", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	code, err := s.otpCode.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	codeHash, err := s.bcrypt.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp code", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	now := s.clock.Now()
	ttl := s.cfg.GetMinute("modules.account.otp_ttl_minutes")

	if err := s.repoDB.UpsertOtpToken(ctx, entity.NewOtpToken{
		ID:         s.uid.Generate(),
		UserID:     user.ID,
		Email:      user.Email,
		CodeHash:   string(codeHash),
		Type:       entity.OtpTypeResetPassword,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		MaxAttempt: int32(s.cfg.GetInt("modules.account.otp_max_attempt")),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert otp token", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.mailQueue.Enqueue(ctx, mail.Message{
		To:      []string{user.Email},
		Subject: "Your password reset code",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYour password reset code is: %s\n\nThis code expires in %d minutes. If you did not request a password reset, you can ignore this email.\n\nThe TixGo Team",
			user.FullName, code, int(ttl.Minutes()),
		),
	}); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue password reset email", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
