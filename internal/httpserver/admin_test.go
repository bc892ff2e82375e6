package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cartoolsbd/storefront/internal/models"
)

func placeOrder(t *testing.T, env *testEnv, p models.Product) {
	t.Helper()
	rec := env.doJSON(http.MethodPost, "/api/v1/cart/items", map[string]string{"product_id": p.ID.String()})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = env.doJSON(http.MethodPost, "/api/v1/cart/checkout", validCheckout())
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodGet, "/api/v1/admin/orders", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(http.MethodPost, "/api/v1/register", map[string]string{
		"email":    "shopper@example.com",
		"password": "shopper-pass",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodPost, "/api/v1/login", map[string]string{
		"email":    "shopper@example.com",
		"password": "shopper-pass",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/v1/admin/orders", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminListsAndUpdatesOrders(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("torque wrench", 2500)
	placeOrder(t, env, p)
	env.loginAdmin()

	rec := env.doJSON(http.MethodGet, "/api/v1/admin/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Data []models.Order `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Data, 1)
	require.Equal(t, int64(1), page.Meta.Total)
	require.Equal(t, models.OrderStatusPending, page.Data[0].Status)

	rec = env.doJSON(http.MethodPatch, "/api/v1/admin/orders/"+page.Data[0].ID.String()+"/status",
		map[string]string{"status": models.OrderStatusShipped})
	require.Equal(t, http.StatusOK, rec.Code)

	var order models.Order
	require.NoError(t, env.db.First(&order, "id = ?", page.Data[0].ID).Error)
	require.Equal(t, models.OrderStatusShipped, order.Status)
}

func TestAdminStatusValidation(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("torque wrench", 2500)
	placeOrder(t, env, p)
	env.loginAdmin()

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)

	rec := env.doJSON(http.MethodPatch, "/api/v1/admin/orders/"+order.ID.String()+"/status",
		map[string]string{"status": "Teleported"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminStats(t *testing.T) {
	env := newTestEnv(t)
	p := env.createProduct("torque wrench", 2500)
	placeOrder(t, env, p)
	env.loginAdmin()

	rec := env.doJSON(http.MethodPost, "/api/v1/contacts", map[string]string{
		"name":    "Karim Mia",
		"email":   "karim@example.com",
		"phone":   "+8801234567890",
		"message": "Opening hours?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		TotalOrders   int64 `json:"total_orders"`
		PendingOrders int64 `json:"pending_orders"`
		TotalProducts int64 `json:"total_products"`
		TotalContacts int64 `json:"total_contacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Equal(t, int64(1), stats.TotalOrders)
	require.Equal(t, int64(1), stats.PendingOrders)
	require.Equal(t, int64(1), stats.TotalProducts)
	require.Equal(t, int64(1), stats.TotalContacts)
}
