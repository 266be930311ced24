package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
)

// ListSessions lists the caller's sessions, most recently updated first.
// GET /v1/chat/sessions
func (h *Handler) ListSessions(c echo.Context) error {
	sessions, err := h.service.ListForUser(c.Request().Context(), currentUser(c))
	if err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"sessions": sessions,
	})
}

// GetHistory returns one page of the caller's sessions.
// GET /v1/chat/history?page=&size=
func (h *Handler) GetHistory(c echo.Context) error {
	page := 0
	if p := c.QueryParam("page"); p != "" {
		if val, err := strconv.Atoi(p); err == nil {
			page = val
		}
	}
	size := 0
	if s := c.QueryParam("size"); s != "" {
		if val, err := strconv.Atoi(s); err == nil {
			size = val
		}
	}

	result, err := h.service.ListPageForUser(c.Request().Context(), currentUser(c), page, size)
	if err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// GetSession returns an owned session with its messages.
// GET /v1/chat/sessions/:session_id
func (h *Handler) GetSession(c echo.Context) error {
	detail, err := h.service.GetSessionDetail(c.Request().Context(), currentUser(c), c.Param("session_id"))
	if err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, detail)
}

// DeleteSession removes an owned session and its messages.
// DELETE /v1/chat/sessions/:session_id
func (h *Handler) DeleteSession(c echo.Context) error {
	sessionID := c.Param("session_id")
	if err := h.service.DeleteOwned(c.Request().Context(), currentUser(c), sessionID); err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"session_id": sessionID,
		"message":    "session deleted",
	})
}
