// Command server runs the numbering backend HTTP API: health probes and the
// on-demand emergency pool generation trigger.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
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
	"github.com/letterdesk/numbering-backend/internal/transport/middleware"
	"github.com/letterdesk/numbering-backend/internal/transport/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	logger.Info("starting server",
		slog.String("version", app.BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	healthHandler := rest.NewHealthHandler(pool, app.BuildVersion())
	poolHandler := rest.NewPoolHandler(allocSvc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /admin/pool/run", poolHandler.Run)

	mws := []middleware.Middleware{
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
	}
	if cfg.Server.RateLimitPerMinute > 0 {
		rl := middleware.NewRateLimiter(5 * time.Minute)
		defer rl.Stop()
		mws = append(mws, rl.Limit(cfg.Server.RateLimitPerMinute))
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      middleware.Chain(mws...)(mux),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", slog.String("error", err.Error()))
		}
	}()

	logger.Info("listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("serve", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
