package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/session"
	"github.com/cartoolsbd/storefront/internal/token"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
	sessionContextKey = "session"
)

func CreateCookie(name, value, path string, exp time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}

type SessionMiddleware struct {
	Auth      *service.AuthService
	JWTSecret []byte
}

// WithSession derives the caller's Session from the token cookies. A valid
// access token logs the caller in directly; an expired one is exchanged via
// the refresh token, rotating both cookies. Everything else proceeds as
// LoggedOut; guarding specific routes is RequireAdmin's job.
func (m *SessionMiddleware) WithSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(sessionContextKey, session.LoggedOut())

		if ck, err := c.Cookie(accessCookieName); err == nil {
			if claims, err := token.Parse(ck.Value, m.JWTSecret); err == nil {
				c.Set(sessionContextKey, session.LoggedIn(claims.UserID, claims.Email, claims.Role))
				return next(c)
			}
		}

		rck, err := c.Cookie(refreshCookieName)
		if err != nil {
			return next(c)
		}

		pair, err := m.Auth.Rotate(c.Request().Context(), rck.Value)
		if err != nil {
			return next(c)
		}

		c.SetCookie(CreateCookie(accessCookieName, pair.Access, "/", pair.AccessExp))
		c.SetCookie(CreateCookie(refreshCookieName, pair.Refresh, "/", pair.RefreshExp))
		c.Set(sessionContextKey, session.LoggedIn(pair.User.ID, pair.User.Email, pair.User.Role))
		return next(c)
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !currentSession(c).IsAdmin() {
			return echo.NewHTTPError(http.StatusUnauthorized, "admin access required")
		}
		return next(c)
	}
}

func currentSession(c echo.Context) session.Session {
	if s, ok := c.Get(sessionContextKey).(session.Session); ok {
		return s
	}
	return session.LoggedOut()
}
