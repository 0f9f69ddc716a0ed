package server

import (
	"context"
	"fmt"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/sipcalc/sip-calculator/internal/calculation"
	"github.com/sipcalc/sip-calculator/internal/config"
	"github.com/sipcalc/sip-calculator/internal/domain"
	"github.com/sipcalc/sip-calculator/internal/history"
	"github.com/sipcalc/sip-calculator/internal/output"
)

// API routes.
const (
	RouteProjection   = "/api/projection"
	RouteBreakdownCSV = "/api/projection/breakdown.csv"
	RouteHistory      = "/api/history"
	RoutePresets      = "/api/presets"
	RouteHealth       = "/healthz"
)

const storeTimeout = 5 * time.Second

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ProjectionResponse wraps a projection with the inputs that produced it and
// a query string that reproduces it.
type ProjectionResponse struct {
	Currency   string                   `json:"currency"`
	Config     domain.InvestmentConfig  `json:"config"`
	Result     *domain.ProjectionResult `json:"result"`
	ShareQuery string                   `json:"shareQuery"`
}

// PresetResponse lists one return preset.
type PresetResponse struct {
	Name           string `json:"name"`
	ExpectedReturn string `json:"expectedReturn"`
}

// Server exposes the projection engine and the history over HTTP.
type Server struct {
	engine   *calculation.ProjectionEngine
	parser   *config.InputParser
	recorder *history.Recorder
	currency string
	logger   calculation.Logger

	srv *fasthttp.Server
}

// New creates a server. recorder may be nil, in which case projections are
// not recorded and the history routes return an empty list.
func New(engine *calculation.ProjectionEngine, recorder *history.Recorder, currency string) *Server {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if currency == "" {
		currency = string(domain.DefaultCurrency)
	}
	s := &Server{
		engine:   engine,
		parser:   config.NewInputParser(),
		recorder: recorder,
		currency: currency,
		logger:   calculation.NopLogger{},
	}
	s.srv = &fasthttp.Server{
		Handler:      s.Handler,
		Name:         "sipcalc",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Server) SetLogger(l calculation.Logger) {
	s.logger = calculation.OrNop(l)
}

// ListenAndServe serves requests on addr until Shutdown is called.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("SIP calculator API listening on %s", addr)
	return s.srv.ListenAndServe(addr)
}

// Shutdown stops accepting connections and waits for open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infof("SIP calculator API shutting down")
	return s.srv.ShutdownWithContext(ctx)
}

// Handler routes a request.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	start := time.Now()
	path := string(ctx.Path())

	switch path {
	case RouteProjection:
		switch {
		case ctx.IsGet():
			s.handleProjectionQuery(ctx)
		case ctx.IsPost():
			s.handleProjectionBody(ctx)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case RouteBreakdownCSV:
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		s.handleBreakdownCSV(ctx)
	case RouteHistory:
		switch {
		case ctx.IsGet():
			s.handleHistoryList(ctx)
		case ctx.IsDelete():
			s.handleHistoryClear(ctx)
		default:
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		}
	case RoutePresets:
		if !ctx.IsGet() {
			writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
			break
		}
		s.handlePresets(ctx)
	case RouteHealth:
		writeJSON(ctx, fasthttp.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found: "+path)
	}

	s.logger.Debugf("%s %s -> %d (%s)", ctx.Method(), path, ctx.Response.StatusCode(), time.Since(start))
}

func (s *Server) handleProjectionQuery(ctx *fasthttp.RequestCtx) {
	cfg, ok := s.configFromQuery(ctx)
	if !ok {
		return
	}
	s.respondProjection(ctx, cfg)
}

func (s *Server) handleProjectionBody(ctx *fasthttp.RequestCtx) {
	cfg := domain.DefaultInvestmentConfig()
	if err := json.Unmarshal(ctx.PostBody(), &cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateInvestmentConfig(cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.respondProjection(ctx, cfg)
}

func (s *Server) respondProjection(ctx *fasthttp.RequestCtx, cfg domain.InvestmentConfig) {
	result := s.engine.Compute(cfg)
	s.record(result)
	writeJSON(ctx, fasthttp.StatusOK, ProjectionResponse{
		Currency:   s.currency,
		Config:     cfg,
		Result:     result,
		ShareQuery: config.ToQuery(cfg).Encode(),
	})
}

func (s *Server) handleBreakdownCSV(ctx *fasthttp.RequestCtx) {
	cfg, ok := s.configFromQuery(ctx)
	if !ok {
		return
	}
	result := s.engine.Compute(cfg)
	ctx.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.BreakdownFilename))
	if err := output.WriteBreakdownCSV(ctx, result.Breakdown); err != nil {
		s.logger.Errorf("write breakdown csv: %v", err)
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to write CSV")
	}
}

func (s *Server) handleHistoryList(ctx *fasthttp.RequestCtx) {
	entries := []domain.HistoryEntry{}
	if s.recorder != nil {
		entries = append(entries, s.recorder.List()...)
	}
	writeJSON(ctx, fasthttp.StatusOK, entries)
}

func (s *Server) handleHistoryClear(ctx *fasthttp.RequestCtx) {
	if s.recorder != nil {
		storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := s.recorder.Clear(storeCtx); err != nil {
			s.logger.Errorf("clear history: %v", err)
			writeError(ctx, fasthttp.StatusInternalServerError, "Failed to clear history")
			return
		}
	}
	ctx.SetStatusCode(fasthttp.StatusNoContent)
}

func (s *Server) handlePresets(ctx *fasthttp.RequestCtx) {
	names := calculation.PresetNames()
	presets := make([]PresetResponse, 0, len(names))
	for _, name := range names {
		r, _ := calculation.PresetReturn(name)
		presets = append(presets, PresetResponse{Name: name, ExpectedReturn: r.String()})
	}
	writeJSON(ctx, fasthttp.StatusOK, presets)
}

// configFromQuery bootstraps a config from the query string and validates it.
// On failure the error response is already written.
func (s *Server) configFromQuery(ctx *fasthttp.RequestCtx) (domain.InvestmentConfig, bool) {
	cfg, err := config.FromQuery(queryValues(ctx.QueryArgs()))
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return cfg, false
	}
	if err := s.parser.ValidateInvestmentConfig(cfg); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return cfg, false
	}
	return cfg, true
}

// record stores a history entry. A persistence failure is logged; the entry
// stays in memory and the request still succeeds.
func (s *Server) record(result *domain.ProjectionResult) {
	if s.recorder == nil {
		return
	}
	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if _, err := s.recorder.Record(storeCtx, result); err != nil {
		s.logger.Warnf("record projection: %v", err)
	}
}

func queryValues(args *fasthttp.Args) url.Values {
	values := url.Values{}
	args.VisitAll(func(k, v []byte) {
		values.Add(string(k), string(v))
	})
	return values
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "Failed to encode response")
		return
	}
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetStatusCode(status)
	ctx.SetContentType("application/json")
	ctx.SetBody(body)
}
