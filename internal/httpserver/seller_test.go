package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshelkov/marketplace/internal/models"
)

func TestSellerRoutes_SignUpGetsOwnerRole(t *testing.T) {
	env := newTestEnv(t)

	seller := env.signUpSeller(t, "shop@example.com", "shopkeeper")
	assert.Equal(t, models.RoleOwner, seller.User.Role)
}

func TestSellerRoutes_CreateStore(t *testing.T) {
	env := newTestEnv(t)
	seller := env.signUpSeller(t, "shop@example.com", "shopkeeper")
	buyer := env.signUpUser(t, "buyer@example.com", "buyer")

	// buyers cannot reach seller endpoints
	rec := env.do(t, http.MethodPost, "/api/v1/seller/create-store",
		map[string]string{"name": "Buyer Store"}, buyer.Token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/seller/create-store",
		map[string]string{"name": "   "}, seller.Token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/seller/create-store",
		map[string]string{"name": "My Shop", "region": "EU"}, seller.Token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var store models.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &store))
	assert.Equal(t, "My Shop", store.Name)
	assert.Equal(t, seller.User.ID, store.OwnerID)

	rec = env.do(t, http.MethodPost, "/api/v1/seller/create-store",
		map[string]string{"name": "Second Shop"}, seller.Token)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already have a store")
}

func TestSellerRoutes_Profile(t *testing.T) {
	env := newTestEnv(t)
	seller := env.signUpSeller(t, "shop@example.com", "shopkeeper")

	rec := env.do(t, http.MethodPost, "/api/v1/seller/create-store",
		map[string]string{"name": "My Shop"}, seller.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/seller/profile", nil, seller.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	require.Len(t, profile.Stores, 1)
	assert.Equal(t, "My Shop", profile.Stores[0].Name)
}
