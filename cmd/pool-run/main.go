// Command pool-run executes one emergency pool generation cycle and exits.
// It is intended to be invoked by an external scheduler (cron) on pool days;
// the -force flag runs allocation regardless of the schedule.
//
// Exit codes: 0 = success (including deferred and not-scheduled outcomes),
// 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	auditrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/audit"
	numberrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/number"
	lockrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/poollock"
	schedulerepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/schedule"
	"github.com/letterdesk/numbering-backend/internal/app"
	"github.com/letterdesk/numbering-backend/internal/clock"
	"github.com/letterdesk/numbering-backend/internal/config"
	"github.com/letterdesk/numbering-backend/internal/service/allocation"
	"github.com/letterdesk/numbering-backend/internal/service/poollock"
	"github.com/letterdesk/numbering-backend/internal/service/schedule"
)

func main() {
	force := flag.Bool("force", false, "allocate even when today is not a scheduled pool day")
	month := flag.String("month", "", "target month as YYYY-MM (default: current month)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	loc, err := cfg.Time.Location()
	if err != nil {
		logger.Error("resolve time zone", slog.String("error", err.Error()))
		os.Exit(1)
	}

	clk := clock.NewSystem()

	scheduleSvc := schedule.NewService(logger, schedulerepo.New(pool),
		rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	lockSvc := poollock.NewService(logger, lockrepo.New(pool), clk, poollock.Config{
		StaleAfter: cfg.Pool.LockStaleAfter,
		RetryAfter: cfg.Pool.LockRetryAfter,
		FailOpen:   cfg.Pool.LockFailOpen,
	})
	allocSvc := allocation.NewService(logger,
		numberrepo.New(pool), scheduleSvc, lockSvc, auditrepo.New(pool),
		postgres.NewTxManager(pool), clk, loc, allocation.Config{
			TargetSize:             cfg.Pool.TargetSize,
			ReservationExpiryYears: cfg.Pool.ReservationExpiryYears,
			RunnerID:               cfg.Pool.RunnerUUID(),
			RunnerName:             cfg.Pool.RunnerName,
		})

	res, err := allocSvc.Run(ctx, allocation.RunInput{YearMonth: *month, Force: *force})
	if err != nil {
		logger.Error("pool run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("pool run completed",
		slog.String("status", string(res.Status)),
		slog.String("year_month", res.YearMonth),
		slog.Int("today", res.Today),
		slog.Int("reserved", res.Reserved),
		slog.Int("pool_count", res.PoolCount),
	)
}
