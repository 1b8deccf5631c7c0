package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/shopera/retino-feed/internal/retino/domain"
	"github.com/shopera/retino-feed/internal/retino/export"
	"github.com/shopera/retino-feed/internal/retino/feed/feedlog"
)

// FeedProcessor is the port the HTTP layer depends on; satisfied by
// feed.Processor.
type FeedProcessor interface {
	ProcessFeed(ctx context.Context, orders []domain.Order) (string, error)
}

// Handler handles incoming HTTP requests for feed generation.
type Handler struct {
	processor FeedProcessor
	runs      feedlog.Repository // nil-safe: history endpoint disabled if nil
}

// NewHandler initializes the handler. runs may be nil when the audit log is
// not configured.
func NewHandler(processor FeedProcessor, runs feedlog.Repository) *Handler {
	return &Handler{
		processor: processor,
		runs:      runs,
	}
}

// GenerateFeed receives the order collection, runs one feed generation and
// returns the XML document.
func (h *Handler) GenerateFeed(w http.ResponseWriter, r *http.Request) {
	var req FeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	for _, order := range req.Orders {
		if order.Number == "" {
			writeError(w, http.StatusBadRequest, "invalid_order", "order number is required")
			return
		}
	}

	requestID := middleware.GetReqID(r.Context())
	slog.InfoContext(r.Context(), "feed requested", "request_id", requestID, "orders", len(req.Orders))

	document, err := h.processor.ProcessFeed(r.Context(), mapOrdersToDomain(req.Orders))
	if err != nil {
		switch {
		case errors.Is(err, export.ErrMissingCustomer),
			errors.Is(err, export.ErrMissingContact),
			errors.Is(err, export.ErrMissingAddress):
			writeError(w, http.StatusUnprocessableEntity, "incomplete_order", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "feed_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(document))
}

// ListRuns returns the most recent feed generations, newest first.
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	if h.runs == nil {
		writeError(w, http.StatusNotFound, "audit_disabled", "feed run log is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	entries, err := h.runs.Latest(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "run_log_error", err.Error())
		return
	}

	out := make([]RunResponse, len(entries))
	for i, entry := range entries {
		out[i] = mapRunToResponse(entry)
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
