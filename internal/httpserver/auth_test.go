package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mshelkov/marketplace/internal/models"
)

func TestAuthRoutes_SignUp(t *testing.T) {
	env := newTestEnv(t)

	resp := env.signUpUser(t, "alice@example.com", "alice")
	assert.Equal(t, models.RoleUser, resp.User.Role)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/sign-up", map[string]string{
		"email": "alice@example.com", "password": "secret", "name": "alice",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "user already exists")

	rec = env.do(t, http.MethodPost, "/api/v1/auth/sign-up", map[string]string{
		"email": "", "password": "secret", "name": "x",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthRoutes_SignUp_AdminKey(t *testing.T) {
	env := newTestEnv(t)

	admin := env.signUpAdmin(t, "root@example.com", "root")
	assert.Equal(t, models.RoleAdmin, admin.User.Role)
}

func TestAuthRoutes_SignIn_IdenticalErrorMessages(t *testing.T) {
	env := newTestEnv(t)
	env.signUpUser(t, "known@example.com", "known")

	unknown := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email": "ghost@example.com", "password": "secret",
	}, "")
	wrongPass := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email": "known@example.com", "password": "nope",
	}, "")

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestAuthRoutes_Profile(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/auth/profile", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/auth/profile", nil, "garbage-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := env.signUpUser(t, "me@example.com", "me")
	rec = env.do(t, http.MethodGet, "/api/v1/auth/profile", nil, resp.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, resp.User.ID, user.ID)
	// the password hash must never serialize
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthRoutes_ProfileUpdate(t *testing.T) {
	env := newTestEnv(t)
	resp := env.signUpUser(t, "patch@example.com", "before")

	rec := env.do(t, http.MethodPut, "/api/v1/auth/profile-update", map[string]string{
		"phone": "+123456",
	}, resp.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "before", user.Name)
	assert.Equal(t, "+123456", user.Phone)
}

func TestAuthRoutes_RefreshFlow(t *testing.T) {
	env := newTestEnv(t)
	env.signUpUser(t, "rot@example.com", "rot")

	signIn := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email": "rot@example.com", "password": "secret",
	}, "")
	require.Equal(t, http.StatusOK, signIn.Code)
	ck := refreshCookie(t, signIn)

	noCookie := env.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "")
	require.Equal(t, http.StatusUnauthorized, noCookie.Code)

	first := env.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", ck)
	require.Equal(t, http.StatusOK, first.Code)
	rotated := refreshCookie(t, first)
	assert.NotEqual(t, ck.Value, rotated.Value)

	// the pre-rotation cookie is no longer accepted
	replay := env.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", ck)
	require.Equal(t, http.StatusForbidden, replay.Code)

	second := env.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", rotated)
	require.Equal(t, http.StatusOK, second.Code)
}

func TestAuthRoutes_Logout(t *testing.T) {
	env := newTestEnv(t)
	resp := env.signUpUser(t, "out@example.com", "out")

	signIn := env.do(t, http.MethodPost, "/api/v1/auth/sign-in", map[string]string{
		"email": "out@example.com", "password": "secret",
	}, "")
	ck := refreshCookie(t, signIn)

	rec := env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, resp.Token, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	replay := env.do(t, http.MethodPost, "/api/v1/auth/refresh", nil, "", ck)
	require.Equal(t, http.StatusForbidden, replay.Code)
}
