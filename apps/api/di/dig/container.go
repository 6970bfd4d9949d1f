package dig_container

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/aliakseitokarev/rsschool-app/apps/api/echo"
	"github.com/aliakseitokarev/rsschool-app/core"
	"github.com/aliakseitokarev/rsschool-app/core/schedule"
	logsvc "github.com/aliakseitokarev/rsschool-app/services/logger"
	"github.com/aliakseitokarev/rsschool-app/services/tracing"
	"github.com/aliakseitokarev/rsschool-app/storage/database"
	sqlxrepos "github.com/aliakseitokarev/rsschool-app/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newComponentLogger(conf *core.Config, component string) core.Logger {
	zl, err := logsvc.NewZerolog(conf, component)
	if err != nil {
		log.Fatalf("setting up %s logger: %v", component, err)
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newLogger(conf *core.Config) core.Logger {
	return newComponentLogger(conf, "API")
}

func newDBLogger(conf *core.Config) core.Logger {
	return newComponentLogger(conf, "DB")
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sql.DB {
	setUp := func(ctx context.Context) (*sql.DB, error) {
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, err
		}

		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(ctx, db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp(context.Background())
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newTracing(conf *core.Config, logger core.Logger) tracing.ShutdownFunc {
	shutdown, err := tracing.Setup(context.Background(), conf)
	if err != nil {
		logger.Error("tracing disabled", err)
	}
	return shutdown
}

func newValidator() *validator.Validate {
	return validator.New()
}

// newScheduleService depends on the tracer provider being set up first.
func newScheduleService(repo schedule.Repository, logger core.Logger, conf *core.Config, _ tracing.ShutdownFunc) schedule.Service {
	return schedule.NewService(repo, logger, conf)
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newTracing))
	must(c.Provide(
		sqlxrepos.NewScheduleRepository,
		dig.As(new(schedule.Repository), new(schedule.CopyRepository), new(core.Pinger)),
	))
	must(c.Provide(newValidator))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newScheduleService))
	must(c.Provide(schedule.NewCopier))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
