package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	json "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/rpgo/policy-irr/internal/calculation"
	"github.com/rpgo/policy-irr/internal/config"
	"github.com/rpgo/policy-irr/internal/domain"
	"github.com/rpgo/policy-irr/internal/logging"
)

// ErrorResponse is the body of every non-2xx JSON reply.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// IRRResponse is returned by POST /v1/irr.
type IRRResponse struct {
	Timeline domain.CashFlowTimeline `json:"timeline"`
	IRR      domain.IRRResult        `json:"irr"`
	Totals   domain.FlowTotals       `json:"totals"`
}

// SweepRequest is the body of POST /v1/sweep.
type SweepRequest struct {
	Parameters domain.ScenarioParameters `json:"parameters"`
	Sweep      domain.SweepSpec          `json:"sweep"`
}

// Server exposes the calculation engine over HTTP.
type Server struct {
	engine  *calculation.CalculationEngine
	parser  *config.InputParser
	metrics *Metrics
	logger  *slog.Logger

	metricsHandler fasthttp.RequestHandler
}

// New wires a Server. A nil logger discards output.
func New(engine *calculation.CalculationEngine, parser *config.InputParser, metrics *Metrics, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Server{
		engine:         engine,
		parser:         parser,
		metrics:        metrics,
		logger:         logger,
		metricsHandler: fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})),
	}
}

// Handler routes requests.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/v1/irr":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleIRR(ctx)
	case "/v1/sweep":
		if !requireMethod(ctx, fasthttp.MethodPost) {
			return
		}
		s.handleSweep(ctx)
	case "/healthz":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	case "/metrics":
		if !requireMethod(ctx, fasthttp.MethodGet) {
			return
		}
		s.metricsHandler(ctx)
	default:
		writeError(ctx, fasthttp.StatusNotFound, "Not found")
	}
}

func (s *Server) handleIRR(ctx *fasthttp.RequestCtx) {
	var p domain.ScenarioParameters
	if err := json.Unmarshal(ctx.PostBody(), &p); err != nil {
		s.logger.Warn("irr: invalid request body", "error", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateParameters(&p); err != nil {
		s.logger.Warn("irr: parameters rejected", "error", err)
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	res, err := s.engine.RunScenario(ctx, &domain.Scenario{Name: "request", Parameters: p})
	if err != nil {
		s.logger.Error("irr failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.ObserveDuration(time.Since(start))
	s.metrics.ObserveResult(res.IRR)

	writeJSON(ctx, fasthttp.StatusOK, IRRResponse{Timeline: res.Timeline, IRR: res.IRR, Totals: res.Totals})
}

func (s *Server) handleSweep(ctx *fasthttp.RequestCtx) {
	var req SweepRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		s.logger.Warn("sweep: invalid request body", "error", err)
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.parser.ValidateParameters(&req.Parameters); err != nil {
		s.logger.Warn("sweep: parameters rejected", "error", err)
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateSweep(&req.Parameters, req.Sweep); err != nil {
		s.logger.Warn("sweep: rejected", "error", err)
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if req.Sweep.Scenario == "" {
		req.Sweep.Scenario = "request"
	}

	start := time.Now()
	res, err := s.engine.RunSweep(ctx, req.Parameters, req.Sweep)
	if err != nil {
		if errors.Is(err, calculation.ErrUnknownSweepParameter) || errors.Is(err, calculation.ErrInvalidSweepStep) || errors.Is(err, calculation.ErrInvalidSweepRange) {
			s.logger.Warn("sweep: rejected", "error", err)
			writeError(ctx, fasthttp.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("sweep failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	s.metrics.ObserveDuration(time.Since(start))
	for _, pt := range res.Points {
		s.metrics.ObserveResult(pt.IRR)
	}

	writeJSON(ctx, fasthttp.StatusOK, res)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, readTimeout)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, readTimeout time.Duration) error {
	srv := &fasthttp.Server{
		Handler:     s.Handler,
		Name:        "policyirr",
		ReadTimeout: readTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func requireMethod(ctx *fasthttp.RequestCtx, method string) bool {
	if string(ctx.Method()) != method {
		writeError(ctx, fasthttp.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, "encode response: "+err.Error())
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	body, _ := json.Marshal(ErrorResponse{Status: status, Message: message})
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}
