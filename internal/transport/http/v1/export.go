package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
)

const defaultExportFormat = "pdf"

// ExportAll downloads the caller's whole history.
// GET /v1/chat/export?format=pdf|csv
func (h *Handler) ExportAll(c echo.Context) error {
	file, err := h.service.ExportAll(c.Request().Context(), currentUser(c), exportFormat(c))
	if err != nil {
		return apierror.JSON(c, err)
	}
	return attachment(c, file)
}

// ExportSession downloads one owned session.
// GET /v1/chat/sessions/:session_id/export?format=pdf|csv
func (h *Handler) ExportSession(c echo.Context) error {
	file, err := h.service.ExportOne(c.Request().Context(), currentUser(c), c.Param("session_id"), exportFormat(c))
	if err != nil {
		return apierror.JSON(c, err)
	}
	return attachment(c, file)
}

func exportFormat(c echo.Context) string {
	if f := c.QueryParam("format"); f != "" {
		return f
	}
	return defaultExportFormat
}

func attachment(c echo.Context, file *domain.ExportFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}
