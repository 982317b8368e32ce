package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tixgo/tixgo/internal/pkg/goerror"
	"github.com/tixgo/tixgo/internal/pkg/jwt"
)

type ProfileOutput struct {
	ID       int64
	Email    string
	FullName string
	Role     string
	Status   string
}

func (s *Usecase) Profile(ctx context.Context) (*ProfileOutput, error) {
	ctx, span := s.startSpan(ctx, "Profile")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusinessReason("Authentication required", "UNAUTHORIZED", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusinessReason("Authentication required", "UNAUTHORIZED", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ProfileOutput{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
		Status:   user.Status.String(),
	}, nil
}
