package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/goerror"
	"github.com/tixgo/tixgo/internal/pkg/idempotency"
	"github.com/tixgo/tixgo/internal/pkg/mail"
)

type RegisterInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=5,max=100,alphaspace"`
}

func (s *Usecase) Register(ctx context.Context, in RegisterInput) error {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	// Duplicate-submit suppression; retries inside the redis lock window are
	// rejected without touching the database.
	err := s.idemp.Exec(ctx, "register:"+in.Email, func(ctx context.Context) error {
		return s.register(ctx, in)
	})
	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		return errUserExists()
	}

	return err
}

func (s *Usecase) register(ctx context.Context, in RegisterInput) error {
	_, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return errUserExists()
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return goerror.NewServer(err)
	}

	hashedPassword, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return goerror.NewServer(err)
	}

	user := entity.User{
		ID:       s.uid.Generate(),
		Email:    in.Email,
		FullName: in.FullName,
		Role:     entity.RoleUser,
		Status:   entity.UserStatusActive,
		Password: string(hashedPassword),
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return errUserExists()
		}
		slog.ErrorContext(ctx, "failed to repo create user", "email", user.Email, "error", err)
		return goerror.NewServer(err)
	}

	// Welcome mail is best effort; registration already succeeded.
	if err := s.mailQueue.Enqueue(ctx, mail.Message{
		To:       []string{user.Email},
		Subject:  "Welcome to TixGo",
		TextBody: "Hi " + user.FullName + ",\n\nYour account has been created. You can now sign in and start booking tickets.\n\nThe TixGo Team",
	}); err != nil {
		slog.WarnContext(ctx, "failed to enqueue welcome email", "user_id", user.ID, "error", err)
	}

	return nil
}

func errUserExists() error {
	return goerror.NewBusinessReason("Email already registered", "USER_EXISTS", goerror.CodeConflict)
}
