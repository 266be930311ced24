package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
)

// SendMessage runs one conversation turn.
// POST /v1/chat/messages
func (h *Handler) SendMessage(c echo.Context) error {
	var req domain.TurnRequest
	if err := c.Bind(&req); err != nil {
		return apierror.Message(c, http.StatusBadRequest, apierror.CodeInvalidInput, "invalid request body")
	}

	result, err := h.service.SendTurn(c.Request().Context(), currentUser(c), req)
	if err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// SubmitFeedback records feedback on a message.
// POST /v1/chat/feedback
func (h *Handler) SubmitFeedback(c echo.Context) error {
	var req domain.FeedbackRequest
	if err := c.Bind(&req); err != nil {
		return apierror.Message(c, http.StatusBadRequest, apierror.CodeInvalidInput, "invalid request body")
	}
	if req.MessageID == "" {
		return apierror.Message(c, http.StatusBadRequest, apierror.CodeInvalidInput, "message_id is required")
	}

	if err := h.service.SubmitFeedback(c.Request().Context(), currentUser(c), req.MessageID, req.Feedback); err != nil {
		return apierror.JSON(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message_id": req.MessageID,
		"feedback":   req.Feedback,
	})
}

// GetSuggestions returns starter questions for a category.
// GET /v1/chat/suggestions?category=
func (h *Handler) GetSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": h.service.SuggestedQuestions(c.QueryParam("category")),
	})
}

// GetCategories lists the topic categories.
// GET /v1/chat/categories
func (h *Handler) GetCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": h.service.Categories(),
	})
}
