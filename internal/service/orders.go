package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/events"
	"github.com/cartoolsbd/storefront/internal/logging"
	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/util"
)

// OrdersService is the admin-side view over the orders table. The listing
// is global: there is no per-customer scoping.
type OrdersService struct {
	Repo   *repo.OrderRepo
	Events events.Publisher
}

type OrderListParams struct {
	Filter repo.OrderFilter
	Page   int
	Size   int
}

func (s *OrdersService) List(ctx context.Context, p OrderListParams) (util.Page[models.Order], error) {
	offset, limit := util.Calculate(p.Page, p.Size)
	orders, total, err := s.Repo.List(ctx, p.Filter, offset, limit)
	if err != nil {
		return util.Page[models.Order]{}, fmt.Errorf("list orders: %w", err)
	}
	return util.NewPage(orders, p.Page, p.Size, total), nil
}

// UpdateStatus sets any of the three statuses directly. Regressing a status
// (say Delivered back to Pending) is allowed; the console exposes a free
// selection, not a guarded transition.
func (s *OrdersService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, FieldErrors{"status": "status must be Pending, Shipped or Delivered"}
	}

	order, err := s.Repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}

	if s.Events != nil {
		event := map[string]any{
			"type":     "order_status_changed",
			"order_id": id.String(),
			"status":   status,
		}
		if err := s.Events.Publish(ctx, events.TopicOrderEvents, id.String(), event); err != nil {
			logging.FromContext(ctx).Error("publish order event", "error", err)
		}
	}

	return order, nil
}
