package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/service"
)

type StatsHandler struct {
	Svc *service.StatsService
}

func (h *StatsHandler) Stats(c echo.Context) error {
	stats, err := h.Svc.Stats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
