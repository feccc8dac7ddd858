package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/http/requestutil"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	svc    *dining.Service
	token  string
	logger *slog.Logger
	now    nowFunc
}

// NewAdminHandler constructs an AdminHandler. An empty token disables the endpoints.
func NewAdminHandler(svc *dining.Service, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		svc:    svc,
		token:  token,
		logger: logger,
		now:    time.Now,
	}
}

// RefreshResponse is the body of POST /admin/menu/refresh.
type RefreshResponse struct {
	menu.RefreshResult
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// RefreshMenu refreshes the month containing ?date= (default today).
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) RefreshMenu(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = h.svc.Today(h.now())
	}
	if !timeutil.IsDate(date) {
		logging.Warn(logger, "admin refresh invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}

	res := h.svc.Refresh(r.Context(), date)
	resp := RefreshResponse{RefreshResult: res, DurationMS: res.Duration.Milliseconds()}
	status := http.StatusOK
	if res.Err != nil {
		resp.Error = res.Err.Error()
		if !res.Stale {
			status = http.StatusBadGateway
		}
	}

	logging.Info(logger, "admin refresh complete",
		slog.String(logging.FieldMonth, res.Month),
		slog.Uint64(logging.FieldSequence, res.Sequence),
		slog.Bool("updated", res.Updated),
		slog.Bool("stale", res.Stale),
		slog.Int(logging.FieldStatusCode, status),
	)
	writeJSON(w, status, resp, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
