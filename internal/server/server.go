// Package server exposes the benchmark over HTTP: a /factorial endpoint
// running the regimes on demand, Prometheus metrics, and a liveness
// probe. Every response passes through the security middleware.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/logging"
	"github.com/machapraveen/gilbench/internal/orchestration"
)

const (
	// DefaultRequestTimeout bounds a single /factorial computation.
	DefaultRequestTimeout = 30 * time.Second

	// ShutdownTimeout bounds the graceful drain when the server stops.
	ShutdownTimeout = 10 * time.Second

	// readHeaderTimeout guards against slow-header clients.
	readHeaderTimeout = 5 * time.Second
)

// tracer emits one span per computation request; with no SDK installed
// the spans are no-ops.
var tracer = otel.Tracer("github.com/machapraveen/gilbench/internal/server")

// Server serves benchmark computations over HTTP.
type Server struct {
	addr     string
	factory  *factorial.ExecutorFactory
	metrics  *Metrics
	security SecurityConfig
	logger   logging.Logger
	timeout  time.Duration

	httpServer *http.Server
}

// NewServer wires a Server listening on addr and computing through
// factory. A nil logger silences the server.
func NewServer(addr string, factory *factorial.ExecutorFactory, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewLogger(io.Discard, "server")
	}
	return &Server{
		addr:     addr,
		factory:  factory,
		metrics:  NewMetrics(),
		security: DefaultSecurityConfig(),
		logger:   logger,
		timeout:  DefaultRequestTimeout,
	}
}

// Handler returns the routed handler with all middleware applied.
// Exposed separately from Run so tests can drive it with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/factorial", s.wrap(s.handleFactorial))
	mux.HandleFunc("/metrics", s.wrap(s.handleMetrics))
	mux.HandleFunc("/healthz", s.wrap(s.handleHealth))
	return mux
}

// wrap applies the middleware chain: metrics tracking outermost so
// preflight requests are counted too, then the security layer.
func (s *Server) wrap(h http.HandlerFunc) http.HandlerFunc {
	return s.metricsMiddleware(SecurityMiddleware(s.security, h))
}

// Run starts the listener and blocks until ctx is cancelled or the
// listener fails. Cancellation drains in-flight requests before
// returning.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", s.addr))
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		s.logger.Info("http server shutting down")
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen on %s: %w", s.addr, err)
		}
		return nil
	}
}

// regimeResponse is the per-regime slice of a /factorial reply. The
// value travels as a decimal string: 20! exceeds the 53-bit integer
// precision of JSON consumers.
type regimeResponse struct {
	Regime     string  `json:"regime"`
	Name       string  `json:"name"`
	Value      string  `json:"value,omitempty"`
	Bits       int     `json:"bits,omitempty"`
	WallTimeMs float64 `json:"wall_time_ms"`
	Error      string  `json:"error,omitempty"`
}

// factorialResponse is the reply body of /factorial.
type factorialResponse struct {
	N           uint             `json:"n"`
	Repetitions uint64           `json:"repetitions"`
	Workers     int              `json:"workers"`
	Results     []regimeResponse `json:"results"`

	// Speedup is slowest over fastest successful wall time; present only
	// when at least two regimes succeeded.
	Speedup float64 `json:"speedup,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleFactorial computes n! times repetitions under the requested
// regime(s) and replies with the per-regime outcomes. Malformed or
// out-of-bounds arguments are rejected with 400 before any computation.
func (s *Server) handleFactorial(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	repsArg := q.Get("repetitions")
	if repsArg == "" {
		repsArg = "1"
	}
	args, err := factorial.ParseArgs(q.Get("n"), repsArg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := args.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if args.N > s.security.MaxNValue {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("n %d exceeds the server bound of %d", args.N, s.security.MaxNValue))
		return
	}
	if args.Repetitions > s.security.MaxRepetitions {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("repetitions %d exceeds the server bound of %d", args.Repetitions, s.security.MaxRepetitions))
		return
	}

	workers := 1
	if workersArg := q.Get("workers"); workersArg != "" {
		parsed, err := strconv.Atoi(workersArg)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("workers %q: must be a positive integer", workersArg))
			return
		}
		workers = parsed
	}
	if workers > s.security.MaxWorkers {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("workers %d exceeds the server bound of %d", workers, s.security.MaxWorkers))
		return
	}

	mode := q.Get("mode")
	if mode == "" {
		mode = config.ModeBoth
	}
	var executors []factorial.Executor
	if mode == config.ModeBoth {
		executors = s.factory.GetAll()
	} else {
		executor, err := s.factory.Get(mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		executors = []factorial.Executor{executor}
	}

	ctx, span := tracer.Start(r.Context(), "http.factorial",
		trace.WithAttributes(
			attribute.Int("n", int(args.N)),
			attribute.Int64("repetitions", int64(args.Repetitions)),
			attribute.String("mode", mode),
			attribute.Int("workers", workers),
		))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	params := orchestration.RunParams{Args: args, Workers: workers}
	results := orchestration.ExecuteComparison(ctx, executors, params, orchestration.NullProgressReporter{}, io.Discard)

	if ctx.Err() != nil {
		span.RecordError(ctx.Err())
		writeError(w, http.StatusServiceUnavailable, "computation timed out")
		return
	}

	resp := factorialResponse{
		N:           args.N,
		Repetitions: args.Repetitions,
		Workers:     workers,
		Results:     make([]regimeResponse, 0, len(results)),
	}
	for _, result := range results {
		rr := regimeResponse{
			Regime:     result.Key,
			Name:       result.Name,
			WallTimeMs: float64(result.WallTime.Microseconds()) / 1000.0,
		}
		if result.Err != nil {
			rr.Error = result.Err.Error()
		} else {
			rr.Value = strconv.FormatUint(result.Value, 10)
			rr.Bits = bits.Len64(result.Value)
			s.metrics.RecordComputation(result.Key)
		}
		resp.Results = append(resp.Results, rr)
	}
	resp.Speedup = comparisonSpeedup(results)

	s.logger.Info("factorial computed",
		logging.Int("n", int(args.N)),
		logging.Uint64("repetitions", args.Repetitions),
		logging.Int("workers", workers),
		logging.String("mode", mode),
	)
	writeJSON(w, http.StatusOK, resp)
}

// handleMetrics serves the Prometheus exposition. Read-only: anything
// but GET is rejected.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Info("method not allowed",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
		)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness. It carries no computation so probes
// stay cheap.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// comparisonSpeedup reports slowest over fastest successful wall time.
// Returns 0 unless at least two regimes succeeded with non-zero times.
func comparisonSpeedup(results []orchestration.BenchmarkResult) float64 {
	var fastest, slowest time.Duration
	successes := 0
	for _, result := range results {
		if result.Err != nil || result.WallTime <= 0 {
			continue
		}
		if successes == 0 || result.WallTime < fastest {
			fastest = result.WallTime
		}
		if result.WallTime > slowest {
			slowest = result.WallTime
		}
		successes++
	}
	if successes < 2 || fastest <= 0 {
		return 0
	}
	return float64(slowest) / float64(fastest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
