package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aliakseitokarev/rsschool-app/core"
	"github.com/aliakseitokarev/rsschool-app/core/schedule"
	logsvc "github.com/aliakseitokarev/rsschool-app/services/logger"
	"github.com/aliakseitokarev/rsschool-app/storage/database"
	sqlxrepos "github.com/aliakseitokarev/rsschool-app/storage/database/sqlx"
)

var logger core.Logger

func main() {
	ctx := context.Background()
	conf := core.NewConfig()
	conf.Schedule.CacheTTL = 0 // one-shot process

	zl, err := logsvc.NewZerolog(conf, "ADMIN")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rl := logsvc.NewRollbarLogger(zl, conf)
	rl.Enable(false)
	logger = rl

	// set up DB
	db, err := database.Open(ctx, conf)
	errAndDie(err)
	defer db.Close()

	// start CLI
	repo := sqlxrepos.NewScheduleRepository(db)
	cli := commandLine{
		db:     db,
		svc:    schedule.NewService(repo, logger, conf),
		copier: schedule.NewCopier(repo, logger),
		out:    os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		db.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
