// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the aggregation pipeline over HTTP.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pdiddy/gapfinder/internal/aggregate"
	"github.com/pdiddy/gapfinder/internal/analyze"
	"github.com/pdiddy/gapfinder/internal/history"
	"github.com/pdiddy/gapfinder/internal/source"
	"github.com/pdiddy/gapfinder/pkg/types"
)

// Server wires the HTTP boundary: routing, CORS, request logging, and the
// research/analyze/sources/history endpoints.
type Server struct {
	echo    *echo.Echo
	cfg     types.Config
	sources []source.Source
	relay   *analyze.Relay
	store   *history.Store
	logger  *slog.Logger
	started time.Time
}

// New builds a Server. store may be nil, which disables the history endpoint.
func New(cfg types.Config, sources []source.Source, relay *analyze.Relay, store *history.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		echo:    echo.New(),
		cfg:     cfg,
		sources: sources,
		relay:   relay,
		store:   store,
		logger:  logger,
		started: time.Now(),
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.AllowedOrigin},
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(s.requestLogger)

	api := e.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/sources", s.handleSources)
	api.POST("/research", s.handleResearch)
	api.POST("/analyze", s.handleAnalyze)
	if store != nil {
		api.GET("/history", s.handleHistory)
	}

	e.RouteNotFound("/*", s.handleNotFound)

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start runs the server on the configured address until it fails.
func (s *Server) Start() error {
	s.logger.Info("server starting", "addr", s.cfg.Server.Addr)
	return s.echo.Start(s.cfg.Server.Addr)
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.logger.Info("request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.started).Seconds(),
	})
}

func (s *Server) handleSources(c echo.Context) error {
	statuses := source.Statuses(s.cfg.Sources)
	active := 0
	for _, st := range statuses {
		if st.Status == "active" {
			active++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"sources":     statuses,
		"activeCount": active,
		"totalCount":  len(statuses),
	})
}

type researchRequest struct {
	Niche       string `json:"niche"`
	Description string `json:"description"`
}

type researchResponse struct {
	Success bool `json:"success"`
	types.Report
}

func (s *Server) handleResearch(c echo.Context) error {
	var req researchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Invalid request",
			"message": "Request body must be JSON",
		})
	}

	out, err := aggregate.Aggregate(c.Request().Context(), req.Niche, req.Description, s.sources, s.cfg.Sources, s.logger)
	if errors.Is(err, aggregate.ErrEmptyNiche) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Niche is required",
			"message": "Please provide a niche to research",
		})
	}
	if err != nil {
		s.logger.Error("research failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"success":   false,
			"error":     "Internal server error",
			"message":   err.Error(),
			"timestamp": time.Now().UTC(),
		})
	}

	if s.store != nil {
		s.recordHistory(out.Report)
	}

	return c.JSON(http.StatusOK, researchResponse{Success: true, Report: out.Report})
}

// recordHistory is write-behind: failures are logged, never surfaced.
func (s *Server) recordHistory(report types.Report) {
	if err := s.store.RecordSearch(report.Query); err != nil {
		s.logger.Warn("recording search history failed", "error", err)
		return
	}
	if err := s.store.SaveResults(report.Query, report.Results); err != nil {
		s.logger.Warn("caching results failed", "error", err)
	}
}

type analyzeRequest struct {
	Niche       string         `json:"niche"`
	Results     []types.Result `json:"results"`
	Description string         `json:"description"`
}

func (s *Server) handleAnalyze(c echo.Context) error {
	var req analyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Invalid request",
			"message": "Request body must be JSON",
		})
	}

	resp, err := s.relay.Analyze(c.Request().Context(), req.Niche, req.Results, req.Description)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Invalid request",
			"message": "Niche and results array are required",
		})
	}

	if resp.Success {
		return c.JSON(http.StatusOK, map[string]any{
			"success":   true,
			"query":     req.Niche,
			"analysis":  resp.Analysis,
			"timestamp": time.Now().UTC(),
		})
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"error":    "AI service not configured",
			"message":  resp.Message,
			"fallback": resp.Fallback,
		})
	}

	s.logger.Error("analysis relay failed", "status", resp.StatusCode, "error", resp.Message)
	return c.JSON(resp.StatusCode, map[string]any{
		"success":   false,
		"error":     "AI analysis failed",
		"message":   resp.Message,
		"fallback":  resp.Fallback,
		"timestamp": time.Now().UTC(),
	})
}

func (s *Server) handleHistory(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := parsePositiveInt(raw); err == nil {
			limit = n
		}
	}

	entries, err := s.store.Recent(limit)
	if err != nil {
		s.logger.Error("reading history failed", "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]any{
			"error":   "Internal server error",
			"message": err.Error(),
		})
	}
	if entries == nil {
		entries = []history.SearchEntry{}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"searches": entries,
		"count":    len(entries),
	})
}

func parsePositiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("limit must be positive")
	}
	return n, nil
}

func (s *Server) handleNotFound(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]any{
		"error":   "Not Found",
		"message": "Route " + c.Request().Method + " " + c.Request().URL.Path + " not found",
		"availableEndpoints": []string{
			"GET /api/health",
			"GET /api/sources",
			"POST /api/research",
			"POST /api/analyze",
		},
	})
}
