// Package server exposes the chart pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz                       liveness and build version
//	POST /v1/charts/resolve             normalized chart and placement model
//	POST /v1/charts/render?format=svg   rendered artifact
//
// Chart endpoints take the payload as the request body, or fetch it from
// the ?url= query parameter when the body is empty. Errors are returned as
// {"code": "...", "message": "..."} with a status derived from the code.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/kundli/pkg/buildinfo"
	"github.com/matzehuels/kundli/pkg/errors"
	"github.com/matzehuels/kundli/pkg/fetch"
	"github.com/matzehuels/kundli/pkg/pipeline"
	"github.com/matzehuels/kundli/pkg/placement"
	"github.com/matzehuels/kundli/pkg/render/sink"
	"github.com/matzehuels/kundli/pkg/resolve"
)

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// Options configures a Server.
type Options struct {
	Runner *pipeline.Runner
	Fetch  *fetch.Client

	// Defaults are the pipeline options before query overrides.
	Defaults pipeline.Options

	Timeout time.Duration
	Logger  *log.Logger
}

// Server serves the chart API.
type Server struct {
	runner   *pipeline.Runner
	fetch    *fetch.Client
	defaults pipeline.Options
	timeout  time.Duration
	logger   *log.Logger
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Fetch == nil {
		opts.Fetch = fetch.NewClient(fetch.Options{Logger: opts.Logger})
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Server{
		runner:   opts.Runner,
		fetch:    opts.Fetch,
		defaults: opts.Defaults,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/charts", func(r chi.Router) {
		r.Post("/resolve", s.handleResolve)
		r.Post("/render", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

type resolveResponse struct {
	*resolve.Resolution
	Model *placement.Model `json:"model"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.payload(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Resolve(r.Context(), data, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		Resolution: res,
		Model:      s.runner.Place(r.Context(), res, opts),
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := s.options(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := pipeline.DefaultFormat
	if len(s.defaults.Formats) > 0 {
		format = s.defaults.Formats[0]
	}
	if q := r.URL.Query().Get("format"); q != "" {
		if format, err = sink.ValidateFormat(q); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	opts.Formats = []string{format}

	data, err := s.payload(r, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	renderID := uuid.NewString()
	result, err := s.runner.Execute(r.Context(), data, opts)
	if err != nil {
		w.Header().Set("X-Render-ID", renderID)
		s.writeError(w, r, err)
		return
	}

	s.logger.Debug("render complete",
		"render_id", renderID,
		"request_id", middleware.GetReqID(r.Context()),
		"format", format,
		"shape", result.Resolution.Shape,
		"chart_cached", result.CacheInfo.ChartHit,
		"artifact_cached", result.CacheInfo.RenderHit)

	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set("X-Render-ID", renderID)
	w.Header().Set("X-Payload-Hash", result.PayloadHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	if result.Resolution.Synthesized {
		w.Header().Set("X-Chart-Synthesized", "true")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Artifacts[format]); err != nil {
		s.logger.Debug("render response not written",
			"render_id", renderID,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err)
	}
}

// options applies query overrides to the server defaults.
func (s *Server) options(r *http.Request) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	q := r.URL.Query()

	for name, dst := range map[string]*bool{
		"strict":          &opts.Strict,
		"derive_dignity":  &opts.DeriveDignity,
		"mark_retrograde": &opts.MarkRetrograde,
		"refresh":         &opts.Refresh,
	} {
		if v := q.Get(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidInput, "query %s: %q is not a boolean", name, v)
			}
			*dst = b
		}
	}
	if v := q.Get("palette"); v != "" {
		opts.Palette = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "query scale: %q is not a number", v)
		}
		opts.Scale = f
	}
	return opts, nil
}

// payload reads the request body, or fetches ?url= when the body is empty.
func (s *Server) payload(r *http.Request, opts pipeline.Options) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, errors.MaxPayloadBytes+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if len(data) > 0 {
		return data, errors.ValidatePayloadSize(len(data))
	}
	if u := r.URL.Query().Get("url"); u != "" {
		return s.fetch.Fetch(r.Context(), u, opts.Refresh)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty and no url given")
}

type errorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", middleware.GetReqID(r.Context()), "err", err)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidChartData, errors.ErrCodeNoChartData:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidURL:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
