package httpserver

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cartoolsbd/storefront/internal/cart"
	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/transport"
)

const cartCookieName = "cartToken"

// CartHandler serves the session cart. The cart never touches the
// database; it lives in the store until checkout clears it.
type CartHandler struct {
	Store    *cart.Store
	Products *service.ProductsService
}

// cartToken returns the caller's cart token, issuing a cookie on first use.
func (h *CartHandler) cartToken(c echo.Context) string {
	if ck, err := c.Cookie(cartCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	t := h.Store.NewToken()
	c.SetCookie(CreateCookie(cartCookieName, t, "/", time.Now().Add(30*24*time.Hour)))
	return t
}

func (h *CartHandler) GetCart(c echo.Context) error {
	var view transport.CartView
	h.Store.With(h.cartToken(c), func(crt *cart.Cart) {
		view = transport.NewCartView(crt)
	})
	return c.JSON(http.StatusOK, view)
}

// AddItem snapshots the product as it is right now and merges it into the
// cart; a repeat add bumps the quantity instead of adding a second line.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req transport.CartAddRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.ProductID == uuid.Nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": service.FieldErrors{"product_id": "product_id is required"}})
	}

	p, err := h.Products.Get(c.Request().Context(), req.ProductID)
	if err != nil {
		return respondError(c, err)
	}

	var view transport.CartView
	h.Store.With(h.cartToken(c), func(crt *cart.Cart) {
		crt.Add(*p)
		view = transport.NewCartView(crt)
	})
	return c.JSON(http.StatusOK, echo.Map{
		"message": p.Name + " added to cart!",
		"cart":    view,
	})
}

// RemoveItem deletes the line for the given product. Removing a product
// that is not in the cart is not an error.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	productID, err := uuid.Parse(c.Param("productID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	var (
		view    transport.CartView
		removed bool
	)
	h.Store.With(h.cartToken(c), func(crt *cart.Cart) {
		removed = crt.Remove(productID)
		view = transport.NewCartView(crt)
	})

	msg := "Product was not in cart"
	if removed {
		msg = "Product removed from cart!"
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": msg,
		"cart":    view,
	})
}
