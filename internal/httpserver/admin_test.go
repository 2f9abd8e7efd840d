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

func TestAdminRoutes_SetRole(t *testing.T) {
	env := newTestEnv(t)
	admin := env.signUpAdmin(t, "admin@example.com", "admin")
	user := env.signUpUser(t, "user@example.com", "user")

	path := fmt.Sprintf("/api/v1/admin/set-role/%d", user.User.ID)

	rec := env.do(t, http.MethodPost, path, map[string]string{"role": "OWNER"}, user.Token)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]string{"role": "SUPERVISOR"}, admin.Token)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/admin/set-role/999",
		map[string]string{"role": "OWNER"}, admin.Token)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, path, map[string]string{"role": "OWNER"}, admin.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, models.RoleOwner, updated.Role)
}
