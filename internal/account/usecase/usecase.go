package usecase

import (
	"context"
	"time"

	"github.com/tixgo/tixgo/internal/account/entity"
	"github.com/tixgo/tixgo/internal/pkg/clock"
	"github.com/tixgo/tixgo/internal/pkg/config"
	"github.com/tixgo/tixgo/internal/pkg/hash"
	"github.com/tixgo/tixgo/internal/pkg/idempotency"
	"github.com/tixgo/tixgo/internal/pkg/instrument"
	"github.com/tixgo/tixgo/internal/pkg/jwt"
	"github.com/tixgo/tixgo/internal/pkg/mail"
	"github.com/tixgo/tixgo/internal/pkg/otpcode"
	"github.com/tixgo/tixgo/internal/pkg/uid"
	"github.com/tixgo/tixgo/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, user entity.User) error

	UpsertOtpToken(ctx context.Context, in entity.NewOtpToken) error
	VerifyOtpAttempt(ctx context.Context, email string, otpType entity.OtpType, now time.Time, verify func(codeHash string) bool) (*entity.OtpToken, error)
	ConsumeOtpResetPassword(ctx context.Context, otpID, userID int64, newHash string, usedAt time.Time) error
}

type mailQueue interface {
	Enqueue(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB    repoDB
	mailQueue mailQueue
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	bcrypt    hash.Hash
	otpCode   otpcode.Generator
	uid       uid.NumberID
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB      repoDB
	MailQueue   mailQueue
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	Bcrypt      hash.Hash
	OtpCode     otpcode.Generator
	UID         uid.NumberID
	Clock       clock.Clocker
	JWT         jwt.JWT
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		mailQueue: dep.MailQueue,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		bcrypt:    dep.Bcrypt,
		otpCode:   dep.OtpCode,
		uid:       dep.UID,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}
