package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
)

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginOutput struct {
	AccessToken string
	ExpiresIn   int64 // seconds
}

func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "email", in.Email)
		return nil, errInvalidCredentials()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if user.Status != entity.UserStatusActive {
		slog.WarnContext(ctx, "login rejected for inactive user", "user_id", user.ID, "status", user.Status.String())
		return nil, errInvalidCredentials()
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, errInvalidCredentials()
	}

	token, err := s.jwt.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate access jwt token", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ttl := s.cfg.GetMinute("modules.account.jwt_ttl_minutes")

	return &LoginOutput{
		AccessToken: token,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

func errInvalidCredentials() error {
	return goerror.NewBusinessReason("Invalid email or password", "INVALID_CREDENTIALS", goerror.CodeUnauthorized)
}
