package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/events"
	"github.com/cartoolsbd/storefront/internal/logging"
	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/storage"
	"github.com/cartoolsbd/storefront/internal/util"
)

// CatalogIndex receives product-change notifications. search.Indexer
// implements it; a nil index disables search upkeep.
type CatalogIndex interface {
	NotifyChanged()
	Delete(ctx context.Context, id string) error
}

type ProductsService struct {
	Repo   *repo.ProductRepo
	Images *storage.ImageStore
	Events events.Publisher
	Index  CatalogIndex
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

func validateProduct(in ProductInput) FieldErrors {
	fe := FieldErrors{}
	if in.Name == "" {
		fe["name"] = "Product name is required"
	}
	if in.Description == "" {
		fe["description"] = "Description is required"
	}
	if in.Price <= 0 {
		fe["price"] = "Price must be positive"
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// Catalog is the public storefront listing, ordered by creation time.
func (s *ProductsService) Catalog(ctx context.Context) ([]models.Product, error) {
	products, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return products, nil
}

// List is the admin listing: searchable and paginated, newest first.
func (s *ProductsService) List(ctx context.Context, search string, page, size int) (util.Page[models.Product], error) {
	offset, limit := util.Calculate(page, size)
	products, total, err := s.Repo.List(ctx, search, offset, limit)
	if err != nil {
		return util.Page[models.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return util.NewPage(products, page, size, total), nil
}

func (s *ProductsService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Create stores the uploaded image first and then the product row pointing
// at its public URL. A new product requires an image.
func (s *ProductsService) Create(ctx context.Context, in ProductInput, imageName string, image io.Reader) (*models.Product, error) {
	fe := validateProduct(in)
	if image == nil {
		if fe == nil {
			fe = FieldErrors{}
		}
		fe["image"] = "Please upload an image for the new product"
	}
	if fe != nil {
		return nil, fe
	}

	imageURL, err := s.Images.Save(imageName, image)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		ImageURL:    imageURL,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.productEvent(ctx, "product_created", p)
	if s.Index != nil {
		s.Index.NotifyChanged()
	}
	return p, nil
}

// Update edits the product fields; when a replacement image is supplied the
// old file is removed, and a missing old file does not block the edit.
func (s *ProductsService) Update(ctx context.Context, id uuid.UUID, in ProductInput, imageName string, image io.Reader) (*models.Product, error) {
	if fe := validateProduct(in); fe != nil {
		return nil, fe
	}

	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if image != nil {
		newURL, err := s.Images.Save(imageName, image)
		if err != nil {
			return nil, fmt.Errorf("upload image: %w", err)
		}
		if p.ImageURL != "" {
			if err := s.Images.Remove(p.ImageURL); err != nil {
				logging.FromContext(ctx).Warn("remove old product image", "product_id", id, "error", err)
			}
		}
		p.ImageURL = newURL
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price
	p.Category = in.Category

	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.productEvent(ctx, "product_updated", p)
	if s.Index != nil {
		s.Index.NotifyChanged()
	}
	return p, nil
}

// Delete removes the image before the row. A failed or already-done image
// removal is logged and never blocks the database delete.
func (s *ProductsService) Delete(ctx context.Context, id uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if p.ImageURL != "" {
		if err := s.Images.Remove(p.ImageURL); err != nil {
			logging.FromContext(ctx).Warn("remove product image", "product_id", id, "error", err)
		}
	}

	if err := s.Repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.productEvent(ctx, "product_deleted", p)
	if s.Index != nil {
		if err := s.Index.Delete(ctx, id.String()); err != nil {
			logging.FromContext(ctx).Warn("remove product from index", "product_id", id, "error", err)
		}
		s.Index.NotifyChanged()
	}
	return nil
}

func (s *ProductsService) productEvent(ctx context.Context, kind string, p *models.Product) {
	if s.Events == nil {
		return
	}
	event := map[string]any{
		"type":       kind,
		"product_id": p.ID.String(),
		"name":       p.Name,
	}
	if err := s.Events.Publish(ctx, events.TopicProductEvents, p.ID.String(), event); err != nil {
		logging.FromContext(ctx).Error("publish product event", "error", err)
	}
}
