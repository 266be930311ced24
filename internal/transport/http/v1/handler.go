// Package v1 provides the public chat HTTP API.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/service"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/auth"
)

const userKey = "user"

// Handler handles HTTP requests.
type Handler struct {
	service   *service.Service
	jwtSecret string
}

// NewHandler creates a new handler.
func NewHandler(service *service.Service, jwtSecret string) *Handler {
	return &Handler{
		service:   service,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers external routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	authed := []echo.MiddlewareFunc{auth.Middleware(h.jwtSecret), h.requireUser}

	// Conversation
	e.POST("/v1/chat/messages", h.SendMessage, authed...)
	e.POST("/v1/chat/feedback", h.SubmitFeedback, authed...)

	// Sessions
	e.GET("/v1/chat/sessions", h.ListSessions, authed...)
	e.GET("/v1/chat/history", h.GetHistory, authed...)
	e.GET("/v1/chat/sessions/:session_id", h.GetSession, authed...)
	e.DELETE("/v1/chat/sessions/:session_id", h.DeleteSession, authed...)

	// Export
	e.GET("/v1/chat/export", h.ExportAll, authed...)
	e.GET("/v1/chat/sessions/:session_id/export", h.ExportSession, authed...)

	// Public
	e.GET("/v1/chat/suggestions", h.GetSuggestions)
	e.GET("/v1/chat/categories", h.GetCategories)

	e.GET("/health", h.Health)
	e.GET("/health/upstream", h.UpstreamHealth)
}

// requireUser resolves the token subject to a provisioned user.
func (h *Handler) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := h.service.ResolveUser(c.Request().Context(), auth.Email(c))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return apierror.Message(c, http.StatusUnauthorized, apierror.CodeUnauthorized, "user profile not found")
			}
			return apierror.JSON(c, err)
		}
		c.Set(userKey, user)
		return next(c)
	}
}

func currentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	if err := h.service.StoreHealthy(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// UpstreamHealth reports whether the AI responder is reachable.
// GET /health/upstream
func (h *Handler) UpstreamHealth(c echo.Context) error {
	if err := h.service.UpstreamHealthy(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
