package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// RouterConfig tunes the middleware stack.
type RouterConfig struct {
	SubmitRatePerSecond float64
	SubmitBurst         int
}

// NewRouter builds an echo instance with recovery, request IDs, request
// logging and contract validation, and mounts the server's routes.
func NewRouter(server *Server, cfg RouterConfig, l *zap.Logger) (*echo.Echo, error) {
	if l == nil {
		l = zap.NewNop()
	}

	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(RequestID())
	e.Use(RequestLogger(l))
	e.Use(validator)

	limiter := NewRateLimiter(cfg.SubmitRatePerSecond, cfg.SubmitBurst)
	server.RegisterRoutes(e, limiter.Middleware())

	return e, nil
}
