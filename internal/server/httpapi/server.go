package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/educloud/internal/common"
	"github.com/dmitrijs2005/educloud/internal/logging"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address string
	router  *echo.Echo
	logger  logging.Logger
}

// NewRouter mounts the auth routes under basePath. Health answers both at
// {basePath}/api/health, where the client looks for it, and at /api/health.
func NewRouter(basePath string, h *Handler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = h.errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		TargetHeader: common.RequestIDHeaderName,
		Generator:    uuid.NewString,
	}))
	e.Use(h.accessLog)

	g := e.Group(basePath)
	g.POST("/auth/login", h.login)
	g.POST("/auth/register", h.register)
	g.POST("/auth/logout", h.logout)
	g.GET("/api/health", h.health)
	if basePath != "" {
		e.GET("/api/health", h.health)
	}

	return e
}

func NewServer(address, basePath string, h *Handler, l logging.Logger) *Server {
	return &Server{
		address: address,
		router:  NewRouter(basePath, h),
		logger:  l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := s.router.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	return s.router.Shutdown(shutdownCtx)
}
