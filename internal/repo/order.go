package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/models"
)

// OrderFilter is AND-combined: every set field narrows the result.
type OrderFilter struct {
	Query     string    // free text over customer name and email
	ProductID uuid.UUID // exact
	Category  string    // exact, joined through products
	Status    string    // exact
	IDLike    string    // substring of the order id
}

type OrderRepo struct {
	DB *gorm.DB
}

// CreateBatch inserts all rows in one statement inside a transaction. The
// caller gets no per-row outcome; the batch succeeds or fails as a whole.
func (r *OrderRepo) CreateBatch(ctx context.Context, orders []models.Order) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&orders).Error
	})
}

func (r *OrderRepo) List(ctx context.Context, f OrderFilter, offset, limit int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})

	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("LOWER(customer_name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", pattern, pattern)
	}
	if f.ProductID != uuid.Nil {
		q = q.Where("orders.product_id = ?", f.ProductID)
	}
	if f.Category != "" {
		q = q.Joins("JOIN products ON products.id = orders.product_id").
			Where("products.category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	if f.IDLike != "" {
		q = q.Where("CAST(orders.id AS TEXT) LIKE ?", "%"+f.IDLike+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Preload("Product").
		Order("order_date DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepo) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var o models.Order
	if err := r.DB.WithContext(ctx).Preload("Product").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}

func (r *OrderRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&n).Error
	return n, err
}

func (r *OrderRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Order{}).Where("status = ?", status).Count(&n).Error
	return n, err
}
