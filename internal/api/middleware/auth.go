package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seon98/Trip-Backend/internal/api/metrics"
	"github.com/seon98/Trip-Backend/internal/core/domain"
)

const (
	// AccessTokenCookie carries "Bearer <token>" for the server-rendered pages.
	AccessTokenCookie = "access_token"

	principalKey = "principal"
	bearerPrefix = "bearer "
)

// Authenticator verifies a raw session token and resolves its user.
type Authenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*domain.User, error)
}

// CurrentUser returns the principal stored by BearerAuth or CookieAuth, or
// nil for an anonymous request.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(principalKey).(*domain.User)
	return u
}

// SetCurrentUser stores u as the request principal.
func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(principalKey, u)
}

// Unauthorized builds the 401 returned for every bearer failure. The
// WWW-Authenticate challenge is set on the response before the error handler
// writes the body.
func Unauthorized(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenRejected.Error())
}

// BearerAuth requires "Authorization: Bearer <token>". A missing header, a
// different scheme, a rejected token and an unknown subject all produce the
// same 401. Store failures surface as 500.
func BearerAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return Unauthorized(c)
			}

			user, err := auth.Authenticate(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, domain.ErrTokenRejected) {
					metrics.TokenRejectionsTotal.WithLabelValues("bearer").Inc()
					return Unauthorized(c)
				}
				return err
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// CookieAuth resolves the principal from the access_token cookie when there
// is one. It never rejects: on any failure the request continues anonymously
// and the page decides between public content and a redirect to /login.
func CookieAuth(auth Authenticator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			raw, ok := bearerToken(cookie.Value)
			if !ok {
				// Older cookies may hold the bare token.
				raw = cookie.Value
			}

			user, err := auth.Authenticate(c.Request().Context(), raw)
			switch {
			case err == nil:
				SetCurrentUser(c, user)
			case errors.Is(err, domain.ErrTokenRejected):
				metrics.TokenRejectionsTotal.WithLabelValues("cookie").Inc()
				log.Debug().Str("path", c.Path()).Msg("cookie token rejected")
			default:
				log.Error().Err(err).Str("path", c.Path()).Msg("cookie authentication failed")
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from "Bearer <token>", matching the scheme
// case-insensitively.
func bearerToken(value string) (string, bool) {
	if len(value) <= len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(value[len(bearerPrefix):])
	return token, token != ""
}
