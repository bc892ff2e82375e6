package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartoolsbd/storefront/internal/cart"
	"github.com/cartoolsbd/storefront/internal/models"
	"github.com/cartoolsbd/storefront/internal/repo"
	"github.com/cartoolsbd/storefront/internal/service"
	"github.com/cartoolsbd/storefront/internal/storage"
)

// flakyInserter delegates to the real repo until failNext trips, so tests
// can simulate a gateway failure mid-flow. during, when set, runs while the
// insert is in flight, standing in for activity from another tab.
type flakyInserter struct {
	repo     *repo.OrderRepo
	failNext bool
	during   func()
}

func (f *flakyInserter) CreateBatch(ctx context.Context, orders []models.Order) error {
	if f.during != nil {
		f.during()
	}
	if f.failNext {
		f.failNext = false
		return errors.New("gateway unavailable")
	}
	return f.repo.CreateBatch(ctx, orders)
}

type testEnv struct {
	t        *testing.T
	e        *echo.Echo
	db       *gorm.DB
	store    *cart.Store
	inserter *flakyInserter
	auth     *service.AuthService
	cookies  []*http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Order{}, &models.Contact{},
		&models.User{}, &models.RefreshToken{},
	))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	images, err := storage.NewImageStore(t.TempDir(), "http://localhost:8080")
	require.NoError(t, err)

	productRepo := &repo.ProductRepo{DB: db}
	orderRepo := &repo.OrderRepo{DB: db}
	contactRepo := &repo.ContactRepo{DB: db}

	productsSvc := &service.ProductsService{Repo: productRepo, Images: images}
	authSvc := &service.AuthService{
		Users:         &repo.UserRepo{DB: db},
		Tokens:        &repo.RefreshTokenRepo{DB: db},
		JWTSecret:     []byte("test-access-secret"),
		RefreshSecret: []byte("test-refresh-secret"),
	}

	store := cart.NewStore()
	inserter := &flakyInserter{repo: orderRepo}

	deps := Deps{
		Catalog:  &CatalogHandler{Products: productsSvc},
		Cart:     &CartHandler{Store: store, Products: productsSvc},
		Checkout: &CheckoutHandler{Store: store, Checkout: &service.CheckoutService{Orders: inserter}},
		Products: &ProductsHandler{Svc: productsSvc},
		Orders:   &OrdersHandler{Svc: &service.OrdersService{Repo: orderRepo}},
		Contacts: &ContactsHandler{Svc: &service.ContactsService{Repo: contactRepo}},
		Auth:     &AuthHandler{Svc: authSvc},
		Stats:    &StatsHandler{Svc: &service.StatsService{Orders: orderRepo, Products: productRepo, Contacts: contactRepo}},
		Session:  &SessionMiddleware{Auth: authSvc, JWTSecret: []byte("test-access-secret")},
	}

	e := echo.New()
	Register(e, &deps)

	return &testEnv{t: t, e: e, db: db, store: store, inserter: inserter, auth: authSvc}
}

// doJSON runs a request through the full router, carrying the cookie jar
// across calls the way a browser would.
func (env *testEnv) doJSON(method, path string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range env.cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		env.setCookie(ck)
	}
	return rec
}

func (env *testEnv) setCookie(ck *http.Cookie) {
	for i, existing := range env.cookies {
		if existing.Name == ck.Name {
			env.cookies[i] = ck
			return
		}
	}
	env.cookies = append(env.cookies, ck)
}

func (env *testEnv) cartToken() string {
	env.t.Helper()
	for _, ck := range env.cookies {
		if ck.Name == "cartToken" {
			return ck.Value
		}
	}
	env.t.Fatal("no cart token cookie in jar")
	return ""
}

func (env *testEnv) createProduct(name string, price float64) models.Product {
	env.t.Helper()
	p := models.Product{Name: name, Description: "test tool", Price: price, Category: "hand-tools"}
	require.NoError(env.t, env.db.Create(&p).Error)
	return p
}

func (env *testEnv) loginAdmin() {
	env.t.Helper()
	ctx := context.Background()

	u, err := env.auth.Register(ctx, "admin@example.com", "admin-password")
	require.NoError(env.t, err)
	require.NoError(env.t, env.db.Model(&models.User{}).Where("id = ?", u.ID).Update("role", "admin").Error)

	rec := env.doJSON(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	require.Equal(env.t, http.StatusOK, rec.Code)
}
