package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/transport"
)

type AuthHandler struct {
	Svc *service.AuthService
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req transport.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req transport.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	pair, err := h.Svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	c.SetCookie(CreateCookie(accessCookieName, pair.Access, "/", pair.AccessExp))
	c.SetCookie(CreateCookie(refreshCookieName, pair.Refresh, "/", pair.RefreshExp))

	return c.JSON(http.StatusOK, echo.Map{
		"user":     pair.User,
		"is_admin": pair.User.Role == "admin",
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(refreshCookieName); err == nil {
		if err := h.Svc.Logout(c.Request().Context(), ck.Value); err != nil {
			return respondError(c, err)
		}
	}

	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(CreateCookie(accessCookieName, "", "/", expired))
	c.SetCookie(CreateCookie(refreshCookieName, "", "/", expired))

	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// Me reports the caller's session so the client can derive its UI state
// from the server's view instead of a local flag.
func (h *AuthHandler) Me(c echo.Context) error {
	s := currentSession(c)
	if !s.LoggedIn() {
		return c.JSON(http.StatusOK, echo.Map{"logged_in": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"logged_in": true,
		"user_id":   s.UserID(),
		"email":     s.Email(),
		"is_admin":  s.IsAdmin(),
	})
}
