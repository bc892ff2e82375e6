package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/cart"
	"github.com/cartoolsbd/storefront/internal/logging"
	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/transport"
)

type CheckoutHandler struct {
	Store    *cart.Store
	Checkout *service.CheckoutService
}

// Submit places the order for the caller's cart. The cart is cleared only
// after the batch insert succeeds; on any failure it is left untouched so
// the customer can simply retry. Only the submitted quantities are removed,
// so anything added from another tab while the insert is in flight stays in
// the cart.
func (h *CheckoutHandler) Submit(c echo.Context) error {
	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	ck, err := c.Cookie(cartCookieName)
	if err != nil || ck.Value == "" {
		return respondError(c, service.ErrEmptyCart)
	}
	token := ck.Value

	var lines []cart.Line
	h.Store.With(token, func(crt *cart.Cart) {
		lines = crt.Lines()
	})

	info := service.CustomerInfo{
		Name:    req.CustomerName,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	}

	orders, err := h.Checkout.Submit(c.Request().Context(), info, lines)
	if err != nil {
		return respondError(c, err)
	}

	h.Store.With(token, func(crt *cart.Cart) {
		for _, l := range lines {
			crt.Deduct(l.Product.ID, l.Quantity)
		}
	})

	logging.FromContext(c.Request().Context()).Info("order placed",
		"customer", info.Email, "lines", len(orders))

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Order placed successfully!",
		"orders":  orders,
	})
}
