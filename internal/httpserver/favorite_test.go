package httpserver

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFavoriteRoutes(t *testing.T) {
	env := newTestEnv(t)
	user := env.signUpUser(t, "fav@example.com", "fav")

	rec := env.do(t, http.MethodPost, "/api/v1/favorite/create-favorite",
		map[string]any{"productId": 42}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/favorite/create-favorite",
		map[string]any{}, user.Token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/favorite/create-favorite",
		map[string]any{"productId": 42}, user.Token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/favorite/create-favorite",
		map[string]any{"productId": 42}, user.Token)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/favorite/delete-favorite",
		map[string]any{"productId": 7}, user.Token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/favorite/delete-favorite",
		map[string]any{"productId": 42}, user.Token)
	require.Equal(t, http.StatusOK, rec.Code)
}
