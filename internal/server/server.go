// Package server exposes a compiled model over HTTP. One model, one
// device, a small JSON surface: infer, model description, device list
// and a health probe.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"golang.org/x/time/rate"
)

// Server wires an Engine into echo routes.
type Server struct {
	engine  Engine
	logger  *slog.Logger
	limiter *rate.Limiter
	clock   func() time.Time
}

// Config configures NewServer.
type Config struct {
	// Logger for request outcomes. Defaults to slog.Default().
	Logger *slog.Logger

	// RateLimit caps inference requests per second; zero disables
	// limiting. RateBurst defaults to RateLimit when unset.
	RateLimit float64
	RateBurst int
}

// NewServer creates a Server around the given engine.
func NewServer(engine Engine, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int(cfg.RateLimit)
			if burst < 1 {
				burst = 1
			}
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Server{
		engine:  engine,
		logger:  logger,
		limiter: limiter,
		clock:   time.Now,
	}
}

// Register attaches the server's routes to e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.requestID)

	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/model", s.handleModel)
	e.GET("/v1/devices", s.handleDevices)
	e.POST("/v1/infer", s.handleInfer, s.rateLimit)
}

// requestID tags every request with a UUID, echoed back in the
// X-Request-ID header unless the client supplied one.
func (s *Server) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := c.Request().Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Response().Header().Set("X-Request-ID", id)
		c.Set("request_id", id)
		return next(c)
	}
}

// rateLimit rejects requests beyond the configured rate with 429.
func (s *Server) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		if s.limiter != nil && !s.limiter.Allow() {
			return writeError(c, http.StatusTooManyRequests, "rate_limited", "too many requests")
		}
		return next(c)
	}
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleModel(c *echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.Describe())
}

func (s *Server) handleDevices(c *echo.Context) error {
	devices, err := s.engine.Devices()
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "runtime_error", err.Error())
	}
	return c.JSON(http.StatusOK, map[string][]string{"devices": devices})
}

// InferRequest is the body of POST /v1/infer.
type InferRequest struct {
	// Input is the flat float32 input tensor data.
	Input []float32 `json:"input"`
	// OutputSize optionally overrides the output buffer length, for
	// models with dynamic output shapes.
	OutputSize int `json:"output_size,omitempty"`
}

// InferResponse is the reply of POST /v1/infer.
type InferResponse struct {
	Output     []float32 `json:"output"`
	DurationMS float64   `json:"duration_ms"`
	RequestID  string    `json:"request_id"`
}

func (s *Server) handleInfer(c *echo.Context) error {
	req, err := decodeJSON[InferRequest](c.Request().Body)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "invalid_request", err.Error())
	}
	if len(req.Input) == 0 {
		return writeError(c, http.StatusBadRequest, "invalid_request", "input cannot be empty")
	}

	requestID, _ := c.Get("request_id").(string)

	start := s.clock()
	output, err := s.engine.Infer(c.Request().Context(), req.Input, req.OutputSize)
	elapsed := s.clock().Sub(start)

	if err != nil {
		s.logger.Error("inference failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return writeError(c, http.StatusInternalServerError, "inference_error", err.Error())
	}

	s.logger.Info("inference completed",
		slog.String("request_id", requestID),
		slog.Duration("duration", elapsed),
		slog.Int("input_len", len(req.Input)),
		slog.Int("output_len", len(output)),
	)

	return c.JSON(http.StatusOK, InferResponse{
		Output:     output,
		DurationMS: float64(elapsed) / float64(time.Millisecond),
		RequestID:  requestID,
	})
}
