package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/tixgo/tixgo/internal/pkg/clock"
	"github.com/tixgo/tixgo/internal/pkg/config"
	"github.com/tixgo/tixgo/internal/pkg/goroutine"
	"github.com/tixgo/tixgo/internal/pkg/hash"
	"github.com/tixgo/tixgo/internal/pkg/idempotency"
	"github.com/tixgo/tixgo/internal/pkg/instrument"
	"github.com/tixgo/tixgo/internal/pkg/jwt"
	"github.com/tixgo/tixgo/internal/pkg/mail"
	"github.com/tixgo/tixgo/internal/pkg/mailq"
	"github.com/tixgo/tixgo/internal/pkg/otpcode"
	"github.com/tixgo/tixgo/internal/pkg/rate"
	"github.com/tixgo/tixgo/internal/pkg/router"
	"github.com/tixgo/tixgo/internal/pkg/uid"
	"github.com/tixgo/tixgo/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otpCode   otpcode.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	idemp     idempotency.Idempotency
	mail      mail.Mail
	mailQueue *mailq.Queue

	// admission control
	rateRegister rate.Limiter
	rateLogin    rate.Limiter
	rateForgot   rate.Limiter

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initMailQueue()
	app.initRateLimiters()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
