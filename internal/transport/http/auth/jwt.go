// Package auth verifies bearer tokens issued by the campus auth service.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Manideep236692/IARE-ChatBot/internal/transport/http/apierror"
)

const emailKey = "auth_email"

// ParseToken validates an HS256 token and returns its subject, the user's email.
func ParseToken(tokenStr, secret string) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	email := strings.TrimSpace(claims.Subject)
	if email == "" {
		return "", errors.New("token has no subject")
	}
	return email, nil
}

// Middleware rejects requests without a valid bearer token and stores the
// token subject on the context.
func Middleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authz := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authz, "Bearer ") {
				return apierror.Message(c, http.StatusUnauthorized, apierror.CodeUnauthorized, "missing bearer token")
			}

			email, err := ParseToken(strings.TrimSpace(strings.TrimPrefix(authz, "Bearer ")), secret)
			if err != nil {
				zerolog.Ctx(c.Request().Context()).Debug().Err(err).Msg("rejected bearer token")
				return apierror.Message(c, http.StatusUnauthorized, apierror.CodeUnauthorized, "invalid token")
			}

			c.Set(emailKey, email)
			return next(c)
		}
	}
}

// Email returns the authenticated email, or "" outside Middleware.
func Email(c echo.Context) string {
	email, _ := c.Get(emailKey).(string)
	return email
}
