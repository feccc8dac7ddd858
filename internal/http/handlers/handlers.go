package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/campus-dining-service/internal/app/dining"
	"github.com/preston-bernstein/campus-dining-service/internal/domain/meals"
	"github.com/preston-bernstein/campus-dining-service/internal/logging"
	"github.com/preston-bernstein/campus-dining-service/internal/menu"
	"github.com/preston-bernstein/campus-dining-service/internal/poller"
	"github.com/preston-bernstein/campus-dining-service/internal/timeutil"
)

type nowFunc func() time.Time

// Handler wires HTTP routes to the dining service.
type Handler struct {
	svc      *dining.Service
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults. statusFn may be nil when no poller runs.
func NewHandler(svc *dining.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// ReadyResponse is the body of GET /ready.
type ReadyResponse struct {
	Status string         `json:"status"`
	Menu   menu.Status    `json:"menu"`
	Poller *poller.Status `json:"poller,omitempty"`
}

// NextResponse wraps the next meal; Next is null when nothing starts within the rollover window.
type NextResponse struct {
	Next *dining.Upcoming `json:"next"`
}

// WeeksResponse is the monthly view grouped into week sections.
type WeeksResponse struct {
	Tier  meals.Tier    `json:"tier"`
	Weeks []dining.Week `json:"weeks"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimSuffix(r.URL.Path, "/") {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/menu":
		h.Menu(w, r)
	case "/menu/board":
		h.Board(w, r)
	case "/menu/next":
		h.Next(w, r)
	case "/menu/weeks":
		h.Weeks(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready always answers 200: the bundled tier guarantees menus can be served. A failing poller
// downgrades the status to "degraded".
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	resp := ReadyResponse{Status: "ready", Menu: h.svc.Status()}
	if h.statusFn != nil {
		st := h.statusFn()
		resp.Poller = &st
		if !st.IsReady() {
			resp.Status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Menu returns the resolved menu for ?date= (default today).
func (h *Handler) Menu(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	dm := h.svc.Day(date)
	logging.Info(logger, "served menu",
		slog.String(logging.FieldDate, dm.Date),
		slog.String(logging.FieldTier, string(dm.Tier)),
		slog.Int(logging.FieldCount, len(dm.Meals)),
	)
	writeJSON(w, http.StatusOK, dm, logger)
}

// Board returns every meal of ?date= evaluated now, with the next meal.
func (h *Handler) Board(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	date, ok := h.dateParam(w, r)
	if !ok {
		return
	}

	board, err := h.svc.Board(date, h.now())
	if err != nil {
		h.writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, board, logger)
}

// Next returns the next meal to start, looking ahead to later dates when today is done.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)

	next, ok, err := h.svc.Next(h.now())
	if err != nil {
		h.writeServiceError(w, r, err, logger)
		return
	}
	resp := NextResponse{}
	if ok {
		resp.Next = &next
	}
	writeJSON(w, http.StatusOK, resp, logger)
}

// Weeks returns the current monthly view in "Week N" sections.
func (h *Handler) Weeks(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, WeeksResponse{
		Tier:  h.svc.Status().Tier,
		Weeks: h.svc.Weeks(),
	}, loggerFromContext(r, h.logger))
}

func (h *Handler) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		return h.svc.Today(h.now()), true
	}
	if !timeutil.IsDate(date) {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return "", false
	}
	return date, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	if errors.Is(err, dining.ErrInvalidDate) {
		writeError(w, r, http.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	logging.Error(logger, "menu evaluation failed", err)
	writeError(w, r, http.StatusInternalServerError, "menu evaluation failed", logger)
}
