package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/elasticmail/internal/elasticemail"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.elasticemail.enabled") {
		slog.Warn("module elasticemail is disabled")
		return
	}

	if err := elasticemail.New(elasticemail.Dependency{
		Ctx:         a.ctx,
		DBConn:      a.dbConn,
		Cache:       a.cache,
		Idempotency: a.idemp,
		Messaging:   a.messaging,
		Config:      a.config,
		Instrument:  a.ins,
		UUID:        a.uuid,
		HMAC:        a.hmac,
		Clock:       a.clock,
		Goroutine:   a.goroutine,
		Validator:   a.validator,
		Router:      a.router,
		Cron:        a.cron,
	}); err != nil {
		slog.Error("failed to init module elasticemail", "error", err)
		os.Exit(1)
	}
}
