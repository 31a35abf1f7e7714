// Package server exposes the question generator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mathaxy/internal/levels"
	"github.com/abhisek/mathaxy/internal/metrics"
	"github.com/abhisek/mathaxy/internal/questiongen"
	"github.com/abhisek/mathaxy/internal/questionset"
)

// ErrUnknownLevel is returned for a level path segment that is not a number.
var ErrUnknownLevel = errors.New("unknown level")

// Server wires the generator into a gin engine.
type Server struct {
	gen     *questiongen.Generator
	metrics *metrics.Metrics
	logger  *zap.Logger
	engine  *gin.Engine

	defaultCount int
}

// New builds the server. m may be nil to skip instrumentation.
func New(gen *questiongen.Generator, m *metrics.Metrics, logger *zap.Logger, defaultCount int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultCount <= 0 {
		defaultCount = levels.QuestionsPerLevel
	}

	s := &Server{gen: gen, metrics: m, logger: logger, defaultCount: defaultCount}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery(), s.requestLogger())
	if m != nil {
		s.engine.Use(m.Middleware())
		s.engine.GET("/metrics", m.Handler())
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	api.GET("/levels", s.listLevels)
	api.GET("/levels/:level", s.getLevel)
	api.GET("/levels/:level/questions", s.generate)
	api.POST("/verify", s.verify)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorResponse{Error: err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type levelResponse struct {
	Level            int     `json:"level"`
	Mode             string  `json:"mode"`
	Description      string  `json:"description"`
	TimeLimitSeconds float64 `json:"time_limit_seconds"`
	MaxErrors        int     `json:"max_errors"`
	MaxZeroAddend    int     `json:"max_zero_addend"`
	MinTwoDigitSum   int     `json:"min_two_digit_sum"`
	ForbidZeroAddend bool    `json:"forbid_zero_addend"`
}

func newLevelResponse(cfg levels.Config) levelResponse {
	c := levels.ConstraintFor(cfg.Level)
	return levelResponse{
		Level:            cfg.Level,
		Mode:             string(cfg.Mode),
		Description:      cfg.Description,
		TimeLimitSeconds: cfg.TimeLimit().Seconds(),
		MaxErrors:        cfg.MaxErrors,
		MaxZeroAddend:    c.MaxZeroAddend,
		MinTwoDigitSum:   c.MinTwoDigitSum,
		ForbidZeroAddend: c.ForbidZeroAddend,
	}
}

func (s *Server) listLevels(c *gin.Context) {
	all := levels.All()
	out := make([]levelResponse, len(all))
	for i, cfg := range all {
		out[i] = newLevelResponse(cfg)
	}
	c.JSON(http.StatusOK, out)
}

func parseLevel(c *gin.Context) (int, error) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil || !levels.Valid(level) {
		return 0, ErrUnknownLevel
	}
	return level, nil
}

func (s *Server) getLevel(c *gin.Context) {
	level, err := parseLevel(c)
	if err != nil {
		abort(c, http.StatusNotFound, err)
		return
	}
	c.JSON(http.StatusOK, newLevelResponse(levels.Get(level)))
}

func (s *Server) generate(c *gin.Context) {
	level, err := parseLevel(c)
	if err != nil {
		abort(c, http.StatusNotFound, err)
		return
	}

	count := s.defaultCount
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abort(c, http.StatusBadRequest, questiongen.ErrInvalidCount)
			return
		}
		count = n
	}

	qs, err := s.gen.Generate(level, count)
	switch {
	case errors.Is(err, questiongen.ErrInvalidCount):
		abort(c, http.StatusBadRequest, err)
		return
	case errors.Is(err, questiongen.ErrUnsatisfiable):
		abort(c, http.StatusUnprocessableEntity, err)
		return
	case err != nil:
		s.logger.Error("generate failed", zap.Int("level", level), zap.Int("count", count), zap.Error(err))
		abort(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, questionset.NewSet(level, qs))
}

func (s *Server) verify(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	set, err := questionset.Decode(body, questionset.FormatJSON)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}
	report := questionset.Verify(set)
	status := http.StatusOK
	if !report.OK() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, report)
}
