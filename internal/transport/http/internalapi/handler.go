// Package internalapi provides HTTP handlers for internal APIs.
// These APIs are only reachable by the campus auth service.
package internalapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/service"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
)

// Handler handles internal HTTP requests.
type Handler struct {
	service *service.Service
}

// NewHandler creates a new internal API handler.
func NewHandler(service *service.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers internal routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.PUT("/internal/users", h.UpsertUser)
	e.GET("/health", h.Health)
}

// UpsertUser provisions a user profile.
// PUT /internal/users
func (h *Handler) UpsertUser(c echo.Context) error {
	var req domain.UpsertUserRequest
	if err := c.Bind(&req); err != nil {
		return apierror.Message(c, http.StatusBadRequest, apierror.CodeInvalidInput, "invalid request body")
	}

	user, err := h.service.UpsertUser(c.Request().Context(), req)
	if err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	if err := h.service.StoreHealthy(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}
