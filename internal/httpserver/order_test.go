package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshelkov/marketplace/internal/models"
)

func seedOrderProduct(t *testing.T, env *testEnv, title string, price float64) models.Product {
	t.Helper()
	p := models.Product{
		StoreID: 1, CategoryID: 1, BrandID: 1,
		Title: title, Description: "d", Price: price, StockCount: 10,
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func TestOrderRoutes_CartFlow(t *testing.T) {
	env := newTestEnv(t)
	user := env.signUpUser(t, "cart@example.com", "cart")
	p := seedOrderProduct(t, env, "socks", 4)

	rec := env.do(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
		"productId": p.ID, "quantity": 2,
	}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
		"productId": p.ID, "quantity": 2,
	}, user.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
		"productId": p.ID, "quantity": 1,
	}, user.Token)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/order/cart", nil, user.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "socks", items[0].Product.Title)

	rec = env.do(t, http.MethodDelete, "/api/v1/order/delete-from-cart/999", nil, user.Token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/order/delete-from-cart/%d", p.ID), nil, user.Token)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderRoutes_Checkout(t *testing.T) {
	env := newTestEnv(t)
	user := env.signUpUser(t, "buy@example.com", "buy")

	rec := env.do(t, http.MethodPost, "/api/v1/order/checkout", nil, user.Token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	a := seedOrderProduct(t, env, "a", 100)
	b := seedOrderProduct(t, env, "b", 50)

	for _, p := range []models.Product{a, b} {
		rec = env.do(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
			"productId": p.ID, "quantity": 1,
		}, user.Token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/v1/order/checkout", nil, user.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Order models.Order       `json:"order"`
		Items []models.OrderItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 150, resp.Order.Total)
	assert.Len(t, resp.Items, 2)

	rec = env.do(t, http.MethodGet, "/api/v1/order/cart", nil, user.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var left []models.CartItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &left))
	assert.Empty(t, left)
}

func TestOrderRoutes_ClearCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.signUpUser(t, "clear@example.com", "clear")
	a := seedOrderProduct(t, env, "a", 1)
	b := seedOrderProduct(t, env, "b", 2)

	for _, p := range []models.Product{a, b} {
		rec := env.do(t, http.MethodPost, "/api/v1/order/create-order", map[string]any{
			"productId": p.ID, "quantity": 1,
		}, user.Token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := env.do(t, http.MethodDelete, "/api/v1/order/delete-all-cart", nil, user.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]int64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.EqualValues(t, 2, resp["deleted"])
}
