package transport

import (
	"github.com/google/uuid"

	"github.com/cartoolsbd/storefront/internal/cart"
)

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CartAddRequest struct {
	ProductID uuid.UUID `json:"product_id"`
}

type CheckoutRequest struct {
	CustomerName string `json:"customer_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// CartView is what cart endpoints respond with; the total is recomputed
// from the lines on every render.
type CartView struct {
	Lines []cart.Line `json:"lines"`
	Total float64     `json:"total"`
	Count int         `json:"count"`
}

func NewCartView(c *cart.Cart) CartView {
	return CartView{
		Lines: c.Lines(),
		Total: c.Total(),
		Count: c.Len(),
	}
}
