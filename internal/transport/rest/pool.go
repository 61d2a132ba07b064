package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/letterdesk/numbering-backend/internal/domain"
	"github.com/letterdesk/numbering-backend/internal/service/allocation"
)

// poolService defines the minimal interface needed by PoolHandler.
type poolService interface {
	Run(ctx context.Context, in allocation.RunInput) (*allocation.RunResult, error)
}

// PoolHandler serves the on-demand pool generation trigger.
type PoolHandler struct {
	svc poolService
	log *slog.Logger
}

// NewPoolHandler creates a PoolHandler.
func NewPoolHandler(svc poolService, logger *slog.Logger) *PoolHandler {
	return &PoolHandler{svc: svc, log: logger.With("handler", "pool")}
}

type runRequest struct {
	Force     bool   `json:"force"`
	YearMonth string `json:"year_month"`
}

type runResponse struct {
	Success   bool        `json:"success"`
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	YearMonth string      `json:"year_month"`
	Today     int         `json:"today"`
	Scheduled [3]int      `json:"scheduled"`
	Reserved  int         `json:"reserved"`
	PoolCount int         `json:"pool_count"`
	Data      []runRecord `json:"data,omitempty"`
}

type runRecord struct {
	FullNumber string `json:"full_number"`
	Sequence   int    `json:"sequence"`
	Reused     bool   `json:"reused"`
}

// Run handles POST /admin/pool/run. An absent or malformed body defaults to
// force=false. Every logical outcome, including "deferred" and "not scheduled
// today", returns 200; only validation and store failures are error statuses.
func (h *PoolHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) //nolint:errcheck
	}

	res, err := h.svc.Run(r.Context(), allocation.RunInput{
		YearMonth: req.YearMonth,
		Force:     req.Force,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toRunResponse(res))
}

func (h *PoolHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.ErrorContext(r.Context(), "pool run failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func toRunResponse(res *allocation.RunResult) runResponse {
	out := runResponse{
		Success:   true,
		Status:    string(res.Status),
		Message:   statusMessage(res.Status),
		YearMonth: res.YearMonth,
		Today:     res.Today,
		Scheduled: res.ScheduledDays,
		Reserved:  res.Reserved,
		PoolCount: res.PoolCount,
	}
	for _, rec := range res.Records {
		out.Data = append(out.Data, runRecord{
			FullNumber: rec.FullNumber,
			Sequence:   rec.Sequence,
			Reused:     rec.Reused,
		})
	}
	return out
}

func statusMessage(status allocation.Status) string {
	switch status {
	case allocation.StatusNotScheduled:
		return "today is not a scheduled pool generation day"
	case allocation.StatusPoolComplete:
		return "pool already at target size"
	case allocation.StatusNoCombinations:
		return "no active combinations this month"
	case allocation.StatusDeferred:
		return "allocation lock held, run deferred until next cycle"
	case allocation.StatusAllocated:
		return "pool generation finished"
	default:
		return string(status)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}
