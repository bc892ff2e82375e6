package service

import (
	"context"
	"fmt"

	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
)

type Stats struct {
	TotalOrders   int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
	TotalProducts int64 `json:"total_products"`
	TotalContacts int64 `json:"total_contacts"`
}

type StatsService struct {
	Orders   *repo.OrderRepo
	Products *repo.ProductRepo
	Contacts *repo.ContactRepo
}

func (s *StatsService) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	var err error

	if out.TotalOrders, err = s.Orders.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}
	if out.PendingOrders, err = s.Orders.CountByStatus(ctx, models.OrderStatusPending); err != nil {
		return Stats{}, fmt.Errorf("count pending orders: %w", err)
	}
	if out.TotalProducts, err = s.Products.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count products: %w", err)
	}
	if out.TotalContacts, err = s.Contacts.Count(ctx); err != nil {
		return Stats{}, fmt.Errorf("count contacts: %w", err)
	}
	return out, nil
}
