package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tixgo/tixgo/internal/account/inbound"
	"github.com/tixgo/tixgo/internal/account/outbound/db"
	"github.com/tixgo/tixgo/internal/account/usecase"
	"github.com/tixgo/tixgo/internal/pkg/clock"
	"github.com/tixgo/tixgo/internal/pkg/config"
	"github.com/tixgo/tixgo/internal/pkg/hash"
	"github.com/tixgo/tixgo/internal/pkg/idempotency"
	"github.com/tixgo/tixgo/internal/pkg/instrument"
	"github.com/tixgo/tixgo/internal/pkg/jwt"
	"github.com/tixgo/tixgo/internal/pkg/mailq"
	"github.com/tixgo/tixgo/internal/pkg/otpcode"
	"github.com/tixgo/tixgo/internal/pkg/rate"
	"github.com/tixgo/tixgo/internal/pkg/router"
	"github.com/tixgo/tixgo/internal/pkg/uid"
	"github.com/tixgo/tixgo/internal/pkg/validator"
)

type Dependency struct {
	DBConn       *pgxpool.Pool              `validate:"required"`
	Router       *router.Router             `validate:"required"`
	MailQueue    *mailq.Queue               `validate:"required"`
	Idempotency  idempotency.Idempotency    `validate:"required"`
	Config       config.Config              `validate:"required"`
	Instrument   instrument.Instrumentation `validate:"required"`
	UID          uid.NumberID               `validate:"required"`
	Bcrypt       hash.Hash                  `validate:"required"`
	OtpCode      otpcode.Generator          `validate:"required"`
	Clock        clock.Clocker              `validate:"required"`
	Validator    validator.Validator        `validate:"required"`
	JWT          jwt.JWT                    `validate:"required"`
	RateRegister rate.Limiter               `validate:"required"`
	RateLogin    rate.Limiter               `validate:"required"`
	RateForgot   rate.Limiter               `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAccount := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:      dbAccount,
		MailQueue:   dep.MailQueue,
		Idempotency: dep.Idempotency,
		Validator:   dep.Validator,
		Config:      dep.Config,
		Bcrypt:      dep.Bcrypt,
		OtpCode:     dep.OtpCode,
		UID:         dep.UID,
		Clock:       dep.Clock,
		JWT:         dep.JWT,
		Instrument:  dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, inbound.RateLimits{
		Register: dep.RateRegister,
		Login:    dep.RateLogin,
		Forgot:   dep.RateForgot,
	})

	return nil
}
