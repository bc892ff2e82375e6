package httpserver

import (
	"github.com/labstack/echo/v4"
)

type Deps struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Products *ProductsHandler
	Orders   *OrdersHandler
	Contacts *ContactsHandler
	Auth     *AuthHandler
	Stats    *StatsHandler
	Search   *SearchHandler
	Session  *SessionMiddleware

	// ImageDir is served publicly under /images.
	ImageDir string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	if d.ImageDir != "" {
		e.Static("/images", d.ImageDir)
	}

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.Auth.Register)
	v1.POST("/login", d.Auth.Login)
	v1.POST("/logout", d.Auth.Logout)
	v1.GET("/me", d.Auth.Me, d.Session.WithSession)

	v1.GET("/products", d.Catalog.ListProducts)
	v1.GET("/products/:id", d.Catalog.GetProduct)
	if d.Search != nil {
		v1.GET("/search", d.Search.Search)
	}

	v1.POST("/contacts", d.Contacts.Submit)

	crt := v1.Group("/cart")
	crt.GET("", d.Cart.GetCart)
	crt.POST("/items", d.Cart.AddItem)
	crt.DELETE("/items/:productID", d.Cart.RemoveItem)
	crt.POST("/checkout", d.Checkout.Submit)

	admin := v1.Group("/admin", d.Session.WithSession, RequireAdmin)

	admin.GET("/orders", d.Orders.List)
	admin.PATCH("/orders/:id/status", d.Orders.UpdateStatus)

	admin.GET("/products", d.Products.List)
	admin.POST("/products", d.Products.Create)
	admin.PATCH("/products/:id", d.Products.Update)
	admin.DELETE("/products/:id", d.Products.Delete)

	admin.GET("/contacts", d.Contacts.List)
	admin.GET("/stats", d.Stats.Stats)
}
