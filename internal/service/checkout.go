package service

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"

	"github.com/cartoolsbd/storefront/internal/cart"
	"github.com/cartoolsbd/storefront/internal/events"
	"github.com/cartoolsbd/storefront/internal/logging"
	"github.com/cartoolsbd/storefront/internal/models"
)

// Deliverable phone numbers are +880 followed by exactly ten digits, no
// separators.
var phonePattern = regexp.MustCompile(`^\+880\d{10}$`)

type CustomerInfo struct {
	Name    string `json:"customer_name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// ValidateCustomer checks each field independently and returns nil when all
// pass. Nothing reaches the database while this fails.
func ValidateCustomer(info CustomerInfo) FieldErrors {
	fe := FieldErrors{}
	if info.Name == "" {
		fe["customer_name"] = "Full name is required"
	}
	if info.Email == "" {
		fe["email"] = "Email is required"
	} else if _, err := mail.ParseAddress(info.Email); err != nil {
		fe["email"] = "Invalid email"
	}
	if info.Phone == "" {
		fe["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(info.Phone) {
		fe["phone"] = "Phone must be in +880XXXXXXXXXX format"
	}
	if info.Address == "" {
		fe["address"] = "Delivery address is required"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// OrderInserter is the one gateway operation the submitter needs.
type OrderInserter interface {
	CreateBatch(ctx context.Context, orders []models.Order) error
}

// CheckoutService expands a cart into order rows and submits them as a
// single batch. It never clears the cart itself; the caller does that, and
// only after Submit returns success.
type CheckoutService struct {
	Orders OrderInserter
	Events events.Publisher
}

// Submit validates the customer fields, builds one Pending order row per
// cart line sharing those fields, and inserts all rows in one batch. On any
// failure the rows returned are nil and nothing is assumed persisted.
func (s *CheckoutService) Submit(ctx context.Context, info CustomerInfo, lines []cart.Line) ([]models.Order, error) {
	if fe := ValidateCustomer(info); fe != nil {
		return nil, fe
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	rows := make([]models.Order, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, models.Order{
			CustomerName: info.Name,
			Email:        info.Email,
			Phone:        info.Phone,
			Address:      info.Address,
			ProductID:    l.Product.ID,
			Quantity:     l.Quantity,
			Status:       models.OrderStatusPending,
		})
	}

	if err := s.Orders.CreateBatch(ctx, rows); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}

	if s.Events != nil {
		event := map[string]any{
			"type":     "order_placed",
			"customer": info.Email,
			"lines":    len(rows),
		}
		if err := s.Events.Publish(ctx, events.TopicOrderEvents, info.Email, event); err != nil {
			logging.FromContext(ctx).Error("publish order event", "error", err)
		}
	}

	return rows, nil
}
