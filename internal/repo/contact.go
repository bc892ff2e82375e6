package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/models"
)

type ContactRepo struct {
	DB *gorm.DB
}

func (r *ContactRepo) Create(ctx context.Context, c *models.Contact) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// List returns contact messages newest first. Contacts are write-once, so
// this is the only read path.
func (r *ContactRepo) List(ctx context.Context, offset, limit int) ([]models.Contact, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Contact{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []models.Contact
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&contacts).Error; err != nil {
		return nil, 0, err
	}
	return contacts, total, nil
}

func (r *ContactRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Contact{}).Count(&n).Error
	return n, err
}
