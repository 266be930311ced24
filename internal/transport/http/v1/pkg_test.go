package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/adapter/llm"
	"github.com/Manideep236692/IARE-ChatBot/internal/config"
	"github.com/Manideep236692/IARE-ChatBot/internal/domain"
	"github.com/Manideep236692/IARE-ChatBot/internal/policy"
	"github.com/Manideep236692/IARE-ChatBot/internal/prompts"
	"github.com/Manideep236692/IARE-ChatBot/internal/repository"
	"github.com/Manideep236692/IARE-ChatBot/internal/service"
	"github.com/Manideep236692/IARE-ChatBot/tests/helpers"
)

const testSecret = "test-secret"

func newTestHandler(t *testing.T) (*Handler, store.Store) {
	cfg := &config.Config{
		ContextWindow:  config.DefaultContextWindow,
		AssistantLabel: "Assistant",
		JWTSecret:      testSecret,
	}
	db := helpers.NewTestSQLiteStore(t)
	responder := llm.NewResponder(llm.NewMockClient(), "mock-llama", llm.WithTimeout(time.Second))
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	persona, err := prompts.LoadPersona("")
	if err != nil {
		t.Fatalf("LoadPersona failed: %v", err)
	}
	svc := service.New(db, responder, persona, policyEngine, cfg, zerolog.Nop(), nil)
	return NewHandler(svc, testSecret), db
}

// newRouter registers the handler on a fresh echo instance.
func newRouter(h *Handler) *echo.Echo {
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

// newUserContext builds a context for calling a handler directly, as if
// the auth middleware had already run.
func newUserContext(e *echo.Echo, user *domain.User, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(userKey, user)
	return c, rec
}
