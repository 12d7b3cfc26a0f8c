// Package server exposes the annotation store over an HTTP JSON API and
// serves the static browser UI.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"chessbook/internal/annotation"
	"chessbook/internal/position"
	"chessbook/internal/store"
)

type Config struct {
	Listen    string
	Port      int
	StaticDir string
}

type Server struct {
	echo   *echo.Echo
	db     store.Store
	logger *zap.Logger
	config *Config
}

func New(db store.Store, logger *zap.Logger, cfg *Config) (*Server, error) {
	if db == nil {
		return nil, fmt.Errorf("store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = &Config{Listen: "127.0.0.1", Port: 8000}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
			)
			return err
		}
	})

	s := &Server{echo: e, db: db, logger: logger, config: cfg}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	// The FEN occupies the rest of the path: clients that percent-encode
	// its slashes and clients that don't both end up here.
	s.echo.GET("/api/position/fen/*", s.handleFetch)
	s.echo.POST("/api/position/save/:id", s.handleSave)

	if s.config.StaticDir != "" {
		s.echo.File("/", filepath.Join(s.config.StaticDir, "chess.html"))
		s.echo.Static("/static", s.config.StaticDir)
	}
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Listen, s.config.Port)
	s.logger.Info("starting annotation server", zap.String("addr", addr))
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting http server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routing tree, for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleFetch(c echo.Context) error {
	fen := c.Param("*")
	if unescaped, err := url.PathUnescape(fen); err == nil {
		fen = unescaped
	}
	if !position.ValidFEN(fen) {
		s.logger.Warn("rejected position fetch", zap.String("fen", fen))
		return echo.NewHTTPError(http.StatusBadRequest, "malformed FEN")
	}

	rec, err := s.db.Get(c.Request().Context(), fen)
	if err != nil {
		s.logger.Error("position fetch failed", zap.String("fen", fen), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "store failure")
	}
	return c.JSON(http.StatusOK, rec)
}

func (s *Server) handleSave(c echo.Context) error {
	id := annotation.ID(c.Param("id"))

	catalog := annotation.NewCatalog()
	if err := c.Bind(catalog); err != nil {
		s.logger.Warn("invalid save request", zap.String("id", string(id)), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid move catalog")
	}

	rec, err := s.db.Save(c.Request().Context(), id, catalog)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "unknown record id")
	}
	if err != nil {
		s.logger.Error("position save failed", zap.String("id", string(id)), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "store failure")
	}
	return c.JSON(http.StatusOK, rec)
}
