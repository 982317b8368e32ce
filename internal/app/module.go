package app

import (
	"log/slog"
	"os"

	"github.com/tixgo/tixgo/internal/account"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.account.enabled") {
		if err := account.New(account.Dependency{
			Config:       a.config,
			Instrument:   a.ins,
			UID:          a.uid,
			Bcrypt:       a.bcrypt,
			OtpCode:      a.otpCode,
			Clock:        a.clock,
			Validator:    a.validator,
			Router:       a.router,
			DBConn:       a.dbConn,
			Idempotency:  a.idemp,
			MailQueue:    a.mailQueue,
			JWT:          a.jwt,
			RateRegister: a.rateRegister,
			RateLogin:    a.rateLogin,
			RateForgot:   a.rateForgot,
		}); err != nil {
			slog.Error("failed to init module account", "error", err)
			os.Exit(1)
		}
	}
}
