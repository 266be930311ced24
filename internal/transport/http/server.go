// Package http provides the HTTP server implementation for the chat backend.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/service"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/internalapi"
	v1 "github.com/Manideep236692/IARE-ChatBot/internal/transport/http/v1"
)

// NewExternalServer creates and configures the client-facing HTTP server.
// This server handles chat, history, export and the metrics endpoint.
func NewExternalServer(svc *service.Service, cfg *config.Config, log zerolog.Logger, gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(contextLogger(log))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc, cfg.JWTSecret)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return e
}

// NewInternalServer creates and configures the internal HTTP server.
// This server handles user provisioning from the auth service.
func NewInternalServer(svc *service.Service, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(contextLogger(log))
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	// Handlers
	internalHandler := internalapi.NewHandler(svc)

	// Register Routes
	internalHandler.RegisterRoutes(e)

	return e
}

// contextLogger attaches log to the request context so handlers and
// middleware can reach it through zerolog.Ctx.
func contextLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(log.WithContext(req.Context())))
			return next(c)
		}
	}
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURIPath:  true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil || v.Status >= 500 {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("path", v.URIPath).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
