package service

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/storage"
)

type fakeIndex struct {
	notified int
	deleted  []string
}

func (f *fakeIndex) NotifyChanged() { f.notified++ }

func (f *fakeIndex) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newProductsService(t *testing.T) (*ProductsService, *fakeIndex, string) {
	t.Helper()

	dir := t.TempDir()
	images, err := storage.NewImageStore(dir, "http://localhost:8080")
	require.NoError(t, err)

	idx := &fakeIndex{}
	svc := &ProductsService{
		Repo:   &repo.ProductRepo{DB: newTestDB(t)},
		Images: images,
		Events: &eventRecorder{},
		Index:  idx,
	}
	return svc, idx, dir
}

func validInput() ProductInput {
	return ProductInput{
		Name:        "impact driver",
		Description: "18V cordless",
		Price:       5600,
		Category:    "power-tools",
	}
}

func TestCreateProduct(t *testing.T) {
	svc, idx, dir := newProductsService(t)

	p, err := svc.Create(context.Background(), validInput(), "driver.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	require.NotEqual(t, "", p.ID.String())
	require.True(t, strings.HasPrefix(p.ImageURL, "http://localhost:8080/images/"))
	require.True(t, strings.HasSuffix(p.ImageURL, ".jpg"))
	require.Equal(t, 1, idx.notified)

	// The upload really landed on disk.
	_, err = os.Stat(filepath.Join(dir, path.Base(p.ImageURL)))
	require.NoError(t, err)
}

func TestCreateProductRequiresImage(t *testing.T) {
	svc, _, _ := newProductsService(t)

	_, err := svc.Create(context.Background(), validInput(), "", nil)
	require.ErrorIs(t, err, ErrValidation)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "image")
}

func TestCreateProductValidatesFields(t *testing.T) {
	svc, _, _ := newProductsService(t)

	in := ProductInput{Price: -5}
	_, err := svc.Create(context.Background(), in, "x.png", strings.NewReader("png"))
	require.ErrorIs(t, err, ErrValidation)

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "name")
	require.Contains(t, fe, "description")
	require.Contains(t, fe, "price")
}

func TestUpdateProductReplacesImage(t *testing.T) {
	svc, _, dir := newProductsService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), "old.jpg", strings.NewReader("old"))
	require.NoError(t, err)
	oldFile := filepath.Join(dir, path.Base(p.ImageURL))

	in := validInput()
	in.Price = 6100
	updated, err := svc.Update(ctx, p.ID, in, "new.png", strings.NewReader("new"))
	require.NoError(t, err)
	require.NotEqual(t, p.ImageURL, updated.ImageURL)
	require.Equal(t, float64(6100), updated.Price)

	_, err = os.Stat(oldFile)
	require.True(t, os.IsNotExist(err))
}

func TestDeleteProductMissingImageIsNonFatal(t *testing.T) {
	svc, idx, dir := newProductsService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, validInput(), "gone.jpg", strings.NewReader("img"))
	require.NoError(t, err)

	// Someone already removed the file; the database delete must proceed.
	require.NoError(t, os.Remove(filepath.Join(dir, path.Base(p.ImageURL))))

	require.NoError(t, svc.Delete(ctx, p.ID))
	require.Equal(t, []string{p.ID.String()}, idx.deleted)

	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogOrderedByCreation(t *testing.T) {
	svc, _, _ := newProductsService(t)
	ctx := context.Background()

	first := models.Product{Name: "a", Description: "d", Price: 1}
	second := models.Product{Name: "b", Description: "d", Price: 2}
	require.NoError(t, svc.Repo.Create(ctx, &first))
	require.NoError(t, svc.Repo.Create(ctx, &second))

	products, err := svc.Catalog(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, first.ID, products[0].ID)
}
