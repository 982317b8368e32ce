package inbound

import (
	"context"

	"github.com/tixgo/tixgo/internal/account/usecase"
	"github.com/tixgo/tixgo/internal/pkg/rate"
	"github.com/tixgo/tixgo/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Profile(ctx context.Context) (*usecase.ProfileOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) error
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error
}

// RateLimits carries the per-endpoint admission policies.
type RateLimits struct {
	Register rate.Limiter
	Login    rate.Limiter
	Forgot   rate.Limiter
}

func RegisterHTTPEndpoint(r *router.Router, uc uc, rl RateLimits) {
	end := &HTTPEndpoint{uc: uc}

	// Auth
	r.POST("/api/v1/auth/register", end.Register, router.MiddlewareRateLimit(rl.Register))
	r.POST("/api/v1/auth/login", end.Login, router.MiddlewareRateLimit(rl.Login))

	// Password Recovery
	r.POST("/api/v1/auth/password/forgot", end.PasswordForgot, router.MiddlewareRateLimit(rl.Forgot))
	r.POST("/api/v1/auth/password/reset", end.PasswordReset)

	// User Profile (need authenticated)
	r.GET("/api/v1/auth/profile", end.Profile)
}
