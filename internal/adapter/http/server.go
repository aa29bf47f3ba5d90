package http

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/dashboard"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/observability"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/render"
)

//go:embed static/logo.svg
var staticFS embed.FS

// LogoURL is where the page links the sidebar logo.
const LogoURL = "/static/logo.svg"

// Dashboard is the state the handlers read from and push range changes to.
type Dashboard interface {
	CheckReadiness(ctx context.Context) error
	Bounds() domain.DateRange
	OnRangeChanged(r domain.DateRange) dashboard.View
}

// Options configures the dashboard routes.
type Options struct {
	Page     render.PageOptions
	LogoPath string // empty serves the embedded logo
}

// Server exposes the dashboard page, its exports, and the health, readiness,
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	dash       Dashboard
	metrics    *observability.Metrics
	opts       Options
	validate   *validator.Validate
}

// NewServer creates an HTTP server with the dashboard routes plus /healthz,
// /readyz, and /metrics.
func NewServer(addr string, dash Dashboard, metrics *observability.Metrics, opts Options, logger *slog.Logger) *Server {
	r := chi.NewRouter()

	if opts.Page.LogoURL == "" {
		opts.Page.LogoURL = LogoURL
	}

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:   logger,
		dash:     dash,
		metrics:  metrics,
		opts:     opts,
		validate: validator.New(),
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/api/view", s.handleView)
	r.Get("/charts/{name}.svg", s.handleChartSVG)
	r.Get("/export.xlsx", s.handleExport)
	r.Get(LogoURL, s.handleLogo)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(dash))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// rangeQuery is the date range picker input. Missing ends default to the
// dataset bounds.
type rangeQuery struct {
	Start string `validate:"omitempty,datetime=2006-01-02"`
	End   string `validate:"omitempty,datetime=2006-01-02"`
}

// selectRange parses the start and end query parameters and pushes the
// resulting range to the dashboard. It writes a 400 and returns false on
// malformed dates.
func (s *Server) selectRange(w http.ResponseWriter, r *http.Request) (dashboard.View, bool) {
	q := rangeQuery{
		Start: r.URL.Query().Get("start"),
		End:   r.URL.Query().Get("end"),
	}
	if err := s.validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "dates must use the YYYY-MM-DD format")
		return dashboard.View{}, false
	}

	bounds := s.dash.Bounds()
	start, end := bounds.Start, bounds.End
	if q.Start != "" {
		start, _ = time.Parse(domain.DateLayout, q.Start)
	}
	if q.End != "" {
		end, _ = time.Parse(domain.DateLayout, q.End)
	}
	return s.dash.OnRangeChanged(domain.NewDateRange(start, end)), true
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	v, ok := s.selectRange(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, v, s.opts.Page); err != nil {
		s.fail(w, r, "render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v, ok := s.selectRange(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleChartSVG(w http.ResponseWriter, r *http.Request) {
	spec, found := render.LookupChart(chi.URLParam(r, "name"))
	if !found {
		writeError(w, http.StatusNotFound, "unknown chart")
		return
	}
	v, ok := s.selectRange(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, spec, v); err != nil {
		s.exportFailed(w, r, "render svg", err)
		return
	}
	s.metrics.ChartExports.WithLabelValues("svg").Inc()
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	v, ok := s.selectRange(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.WriteWorkbook(&buf, v); err != nil {
		s.exportFailed(w, r, "write workbook", err)
		return
	}
	s.metrics.ChartExports.WithLabelValues("xlsx").Inc()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	filename := "bike-sharing_" + v.Range.Start.Format(domain.DateLayout) + "_" + v.Range.End.Format(domain.DateLayout) + ".xlsx"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(buf.Bytes()) //nolint:errcheck // client may have gone away
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	if s.opts.LogoPath != "" {
		http.ServeFile(w, r, s.opts.LogoPath)
		return
	}
	http.ServeFileFS(w, r, staticFS, "static/logo.svg")
}

// exportFailed maps an empty selection to 422 and anything else to 500.
func (s *Server) exportFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, domain.ErrEmptySelection) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.fail(w, r, op, err)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op+" failed",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker Dashboard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
