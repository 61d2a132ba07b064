//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/letterdesk/numbering-backend/internal/adapter/postgres"
	auditrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/audit"
	numberrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/number"
	lockrepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/poollock"
	schedulerepo "github.com/letterdesk/numbering-backend/internal/adapter/postgres/schedule"
	"github.com/letterdesk/numbering-backend/internal/adapter/postgres/testhelper"
	"github.com/letterdesk/numbering-backend/internal/clock"
	"github.com/letterdesk/numbering-backend/internal/config"
	"github.com/letterdesk/numbering-backend/internal/service/allocation"
	"github.com/letterdesk/numbering-backend/internal/service/poollock"
	"github.com/letterdesk/numbering-backend/internal/service/schedule"
	"github.com/letterdesk/numbering-backend/internal/transport/middleware"
	"github.com/letterdesk/numbering-backend/internal/transport/rest"
)

// testServer wraps the full HTTP stack for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Clock  *clock.Fixed
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack backed by a real
// PostgreSQL container (shared via testhelper), with time frozen at now so
// schedule and lock decisions are deterministic.
func setupTestServer(t *testing.T, now time.Time) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	clk := clock.NewFixed(now)

	scheduleSvc := schedule.NewService(logger, schedulerepo.New(pool),
		rand.New(rand.NewPCG(1, 2)))
	lockSvc := poollock.NewService(logger, lockrepo.New(pool), clk, poollock.Config{
		StaleAfter: 5 * time.Minute,
		RetryAfter: 30 * time.Second,
		FailOpen:   true,
	})
	allocSvc := allocation.NewService(logger,
		numberrepo.New(pool), scheduleSvc, lockSvc, auditrepo.New(pool),
		postgres.NewTxManager(pool), clk, time.UTC, allocation.Config{
			TargetSize:             3,
			ReservationExpiryYears: 10,
			RunnerID:               uuid.MustParse("00000000-0000-0000-0000-000000000001"),
			RunnerName:             "e2e-runner",
		})

	healthHandler := rest.NewHealthHandler(pool, "e2e")
	poolHandler := rest.NewPoolHandler(allocSvc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("POST /admin/pool/run", poolHandler.Run)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         86400,
		}),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Clock:  clk,
	}
}

// runPool posts to /admin/pool/run and decodes the JSON response.
func (ts *testServer) runPool(t *testing.T, body map[string]any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	resp, err := ts.Client.Post(ts.URL+"/admin/pool/run", "application/json", reader)
	require.NoError(t, err)
	defer resp.Body.Close()

	var result map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return resp.StatusCode, result
}
