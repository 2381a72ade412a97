// Package server exposes the loss engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/econloss/loss-calculator/internal/calculation"
	"github.com/econloss/loss-calculator/internal/config"
	"github.com/econloss/loss-calculator/internal/domain"
	"github.com/econloss/loss-calculator/internal/output"
	"github.com/econloss/loss-calculator/pkg/dateutil"
	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const defaultReportFormat = "json"

// Options configures a Server.
type Options struct {
	MaxBodyBytes int64
	MemoSize     int
	Engine       *calculation.CalculationEngine
	Logger       *zap.Logger
	// Now supplies the valuation date when a request has no as_of.
	Now func() time.Time
}

// Server routes compute and report requests to a memoized engine.
type Server struct {
	engine  *calculation.CalculationEngine
	memo    *calculation.Memo
	logger  *zap.Logger
	maxBody int
	now     func() time.Time
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ComputeResponse is the body of a successful compute request.
type ComputeResponse struct {
	Results  domain.Results `json:"results"`
	Warnings []string       `json:"warnings"`
}

// New builds a server, filling unset options with defaults.
func New(opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = config.DefaultMaxBodySizeByte
	}
	if opts.MemoSize <= 0 {
		opts.MemoSize = config.DefaultMemoSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Engine == nil {
		opts.Engine = calculation.NewCalculationEngine()
		opts.Engine.SetLogger(opts.Logger.Sugar())
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		engine:  opts.Engine,
		memo:    calculation.NewMemo(opts.MemoSize),
		logger:  opts.Logger,
		maxBody: int(opts.MaxBodyBytes),
		now:     opts.Now,
	}
}

// Handler returns the request router.
func (s *Server) Handler() fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		op := s.route(ctx)
		s.logger.Info("request",
			zap.String("op", "server."+op),
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("path", ctx.Path()),
			zap.Int("status", ctx.Response.StatusCode()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func (s *Server) route(ctx *fasthttp.RequestCtx) string {
	switch string(ctx.Path()) {
	case "/api/compute":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleCompute(ctx)
		}
		return "compute"
	case "/api/report":
		if requireMethod(ctx, fasthttp.MethodPost) {
			s.handleReport(ctx)
		}
		return "report"
	case "/api/scenarios/defaults":
		if requireMethod(ctx, fasthttp.MethodGet) {
			writeJSON(ctx, fasthttp.StatusOK, domain.DefaultScenarioSet())
		}
		return "scenarios"
	case "/healthz":
		if requireMethod(ctx, fasthttp.MethodGet) {
			s.handleHealth(ctx)
		}
		return "healthz"
	}
	writeError(ctx, fasthttp.StatusNotFound, "not found")
	return "notfound"
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) == method {
		return true
	}
	ctx.Response.Header.Set("Allow", method)
	writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
	return false
}

// computeRequest decodes the body and query shared by compute and report.
func (s *Server) computeRequest(ctx *fasthttp.RequestCtx) (domain.Case, []string, time.Time, bool) {
	body := ctx.PostBody()
	if len(body) > s.maxBody {
		writeError(ctx, fasthttp.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", s.maxBody))
		return domain.Case{}, nil, time.Time{}, false
	}

	asOf := s.now()
	if raw := strings.TrimSpace(string(ctx.QueryArgs().Peek("as_of"))); raw != "" {
		t, ok := dateutil.ParseDate(raw)
		if !ok {
			writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("invalid as_of date %q", raw))
			return domain.Case{}, nil, time.Time{}, false
		}
		asOf = t
	}

	rec := map[string]any{}
	if len(strings.TrimSpace(string(body))) > 0 {
		if err := json.Unmarshal(body, &rec); err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
			return domain.Case{}, nil, time.Time{}, false
		}
	}
	c, warnings := config.FromRecord(rec)
	c, fixes := config.Sanitize(c)
	warnings = append(warnings, fixes...)
	if warnings == nil {
		warnings = []string{}
	}
	return c, warnings, asOf, true
}

func (s *Server) handleCompute(ctx *fasthttp.RequestCtx) {
	c, warnings, asOf, ok := s.computeRequest(ctx)
	if !ok {
		return
	}
	res := s.engine.CalculateCached(s.memo, c, asOf)
	writeJSON(ctx, fasthttp.StatusOK, ComputeResponse{Results: res, Warnings: warnings})
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	format := string(ctx.QueryArgs().Peek("format"))
	if format == "" {
		format = defaultReportFormat
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("%v: %q", output.ErrUnsupportedFormat, format))
		return
	}

	c, warnings, asOf, ok := s.computeRequest(ctx)
	if !ok {
		return
	}
	res := s.engine.CalculateCached(s.memo, c, asOf)
	report := output.NewReport(string(ctx.QueryArgs().Peek("name")), c, res, s.now())
	data, err := f.Format(report)
	if err != nil {
		s.logger.Error("format report",
			zap.String("op", "server.report"),
			zap.String("format", f.Name()),
			zap.Error(err),
		)
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to format report")
		return
	}
	for _, w := range warnings {
		ctx.Response.Header.Add("X-Input-Warning", w)
	}
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetContentType(output.ContentType(f.Name()))
	ctx.SetBody(data)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	hits, misses := s.memo.Stats()
	writeJSON(ctx, fasthttp.StatusOK, map[string]any{
		"status":       "ok",
		"memo_entries": s.memo.Len(),
		"memo_hits":    hits,
		"memo_misses":  misses,
	})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	data, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(data)
}

func (s *Server) httpServer() *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            s.Handler(),
		Name:               "losscalc",
		MaxRequestBodySize: s.maxBody,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        time.Minute,
	}
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := s.httpServer()
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errc; err != nil && !errors.Is(err, net.ErrClosed) {
			return err
		}
		return nil
	}
}

// ListenAndServe listens on addr and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Info("listening",
		zap.String("op", "server.ListenAndServe"),
		zap.String("address", ln.Addr().String()),
	)
	return s.Serve(ctx, ln)
}
