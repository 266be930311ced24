package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(sub string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func TestParseToken(t *testing.T) {
	expired := validClaims("a@iare.ac.in")
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	tests := []struct {
		name    string
		token   string
		secret  string
		want    string
		wantErr bool
	}{
		{name: "valid", token: signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(" a@iare.ac.in ")), secret: testSecret, want: "a@iare.ac.in"},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, "other", validClaims("a@iare.ac.in")), secret: testSecret, wantErr: true},
		{name: "wrong method", token: signToken(t, jwt.SigningMethodHS512, testSecret, validClaims("a@iare.ac.in")), secret: testSecret, wantErr: true},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, testSecret, expired), secret: testSecret, wantErr: true},
		{name: "no expiry", token: signToken(t, jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "a@iare.ac.in"}), secret: testSecret, wantErr: true},
		{name: "no subject", token: signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("")), secret: testSecret, wantErr: true},
		{name: "no secret configured", token: signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("a@iare.ac.in")), secret: "", wantErr: true},
		{name: "garbage", token: "not.a.token", secret: testSecret, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.token, tt.secret)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMiddleware(t *testing.T) {
	e := echo.New()
	var seen string
	handler := Middleware(testSecret)(func(c echo.Context) error {
		seen = Email(c)
		return c.NoContent(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions", nil)
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"unauthorized"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		var logs bytes.Buffer
		log := zerolog.New(&logs).Level(zerolog.DebugLevel)
		req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions", nil)
		req = req.WithContext(log.WithContext(req.Context()))
		req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, logs.String(), `"level":"debug"`)
		assert.Contains(t, logs.String(), `"message":"rejected bearer token"`)
		assert.NotContains(t, logs.String(), "nope")
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/chat/sessions", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("a@iare.ac.in")))
		rec := httptest.NewRecorder()
		require.NoError(t, handler(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "a@iare.ac.in", seen)
	})
}
