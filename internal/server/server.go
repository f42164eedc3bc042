// Package server exposes the analysis over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/KaramelBytes/channelstat/internal/analysis"
	"github.com/KaramelBytes/channelstat/internal/pipeline"
	"github.com/KaramelBytes/channelstat/internal/report"
	"github.com/KaramelBytes/channelstat/internal/source"
	"github.com/KaramelBytes/channelstat/internal/survey"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// DefaultMaxUpload bounds POST /api/analyze bodies.
const DefaultMaxUpload = 10 << 20

// Options configure a Server.
type Options struct {
	Version string
	// Summary is the dataset behind GET /api/research-summary; may be nil.
	Summary   source.Source
	Pipeline  pipeline.Options
	Logger    *zap.Logger
	MaxUpload int64
}

// Server routes the API. Each request runs its own pipeline.
type Server struct {
	router chi.Router
	opt    Options
	logger *zap.Logger
}

// New builds the router.
func New(opt Options) *Server {
	if opt.Logger == nil {
		opt.Logger = zap.NewNop()
	}
	if opt.MaxUpload <= 0 {
		opt.MaxUpload = DefaultMaxUpload
	}
	if opt.Pipeline.Logger == nil {
		opt.Pipeline.Logger = opt.Logger
	}
	s := &Server{router: chi.NewRouter(), opt: opt, logger: opt.Logger}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.requestLogger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Get("/api/research-summary", s.handleResearchSummary)
	s.router.Post("/api/analyze", s.handleAnalyze)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "online", "version": s.opt.Version})
}

type averages struct {
	DigitalIntent float64 `json:"digital_intent"`
	OfflineIntent float64 `json:"offline_intent"`
	DigitalTrust  float64 `json:"digital_trust"`
	OfflineTrust  float64 `json:"offline_trust"`
}

type summaryData struct {
	TotalSample int      `json:"total_sample"`
	Averages    averages `json:"averages"`
}

func (s *Server) handleResearchSummary(w http.ResponseWriter, r *http.Request) {
	if s.opt.Summary == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("no data source configured"))
		return
	}
	ds, err := pipeline.Load(r.Context(), s.opt.Summary, s.opt.Pipeline.Normalize)
	if errors.Is(err, source.ErrEmpty) || (err == nil && ds.Len() == 0) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "No research data found"})
		return
	}
	if err != nil {
		s.logger.Error("research summary failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	m := analysis.Describe(ds).Means
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": summaryData{
			TotalSample: ds.Len(),
			Averages: averages{
				DigitalIntent: m.DigitalIntent,
				OfflineIntent: m.OfflineIntent,
				DigitalTrust:  m.DigitalTrust,
				OfflineTrust:  m.OfflineTrust,
			},
		},
	})
}

// handleAnalyze runs the pipeline on a CSV body. ?format= selects the
// rendering (json by default); ?delimiter= overrides the comma.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	format := report.FormatJSON
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := report.ParseFormat(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		format = f
	}
	src := &source.ReaderSource{Name: "upload", R: http.MaxBytesReader(w, r.Body, s.opt.MaxUpload)}
	if d := r.URL.Query().Get("delimiter"); d != "" {
		src.Delimiter = []rune(d)[0]
	}

	rep, err := pipeline.Run(r.Context(), src, s.opt.Pipeline)
	if err != nil {
		var mce *survey.MissingColumnError
		var tooBig *http.MaxBytesError
		switch {
		case errors.As(err, &mce):
			writeError(w, http.StatusUnprocessableEntity, err)
		case errors.As(err, &tooBig):
			writeError(w, http.StatusRequestEntityTooLarge, err)
		case errors.Is(err, context.Canceled):
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			writeError(w, http.StatusBadRequest, err)
		}
		return
	}
	body, err := report.Render(rep, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Run-Id", rep.RunID())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func contentType(f report.Format) string {
	switch f {
	case report.FormatJSON:
		return "application/json"
	case report.FormatYAML:
		return "application/yaml"
	case report.FormatHTML:
		return "text/html; charset=utf-8"
	case report.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
