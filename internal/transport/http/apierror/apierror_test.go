package apierror

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "not found", err: fmt.Errorf("session s1: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: CodeNotFound},
		{name: "forbidden", err: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: CodeForbidden},
		{name: "format", err: domain.ErrUnsupportedFormat, wantStatus: http.StatusBadRequest, wantCode: CodeUnsupportedFormat},
		{name: "input", err: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest, wantCode: CodeInvalidInput},
		{name: "storage", err: domain.NewStorageError("persist turn", errors.New("disk full")), wantStatus: http.StatusInternalServerError, wantCode: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := Status(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestJSONLogsInternalErrorsToContextLogger(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/messages", nil)
	req = req.WithContext(log.WithContext(req.Context()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/chat/messages")

	require.NoError(t, JSON(c, domain.NewStorageError("persist turn", errors.New("disk full"))))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error","code":"internal"}`, rec.Body.String())

	assert.Contains(t, logs.String(), `"level":"error"`)
	assert.Contains(t, logs.String(), `"message":"request failed"`)
	assert.Contains(t, logs.String(), `"path":"/v1/chat/messages"`)
	assert.Contains(t, logs.String(), "disk full")
}

func TestJSONDoesNotLogClientErrors(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions/s1", nil)
	req = req.WithContext(log.WithContext(req.Context()))
	rec := httptest.NewRecorder()

	require.NoError(t, JSON(e.NewContext(req, rec), fmt.Errorf("session s1: %w", domain.ErrNotFound)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"not_found"`)
	assert.Empty(t, logs.String())
}

func TestJSONWithoutContextLogger(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, JSON(c, errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
