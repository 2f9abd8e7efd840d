package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mshelkov/marketplace/internal/models"
	"github.com/mshelkov/marketplace/internal/repo"
	"github.com/mshelkov/marketplace/internal/service"
)

type testEnv struct {
	DB   *gorm.DB
	Repo *repo.GormRepo
	Echo *echo.Echo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Store{},
		&models.Category{},
		&models.Brand{},
		&models.Product{},
		&models.CartItem{},
		&models.Favorite{},
		&models.Order{},
		&models.OrderItem{},
	))

	r := repo.New(db)
	jwtSecret := []byte("test-jwt-secret")
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     jwtSecret,
		RefreshSecret: []byte("test-refresh-secret"),
		AdminSecret:   "test-admin-secret",
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:     &AuthHTTP{Svc: authSvc},
		SellerHandler:   &SellerHTTP{Auth: authSvc, Store: &service.StoreService{Repo: r}},
		CategoryHandler: &CategoryHTTP{Svc: &service.CategoryService{Repo: r}},
		BrandHandler:    &BrandHTTP{Svc: &service.BrandService{Repo: r}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: r}},
		FavoriteHandler: &FavoriteHTTP{Svc: &service.FavoriteService{Repo: r}},
		OrderHandler:    &OrderHTTP{Svc: &service.CartService{Repo: r}},
		AdminHandler:    &AdminHTTP{Svc: authSvc},
		JWTSecret:       jwtSecret,
	})

	return &testEnv{DB: db, Repo: r, Echo: e}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)
	return rec
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

func (env *testEnv) signUp(t *testing.T, path, email, name, adminKey string) authResponse {
	t.Helper()

	rec := env.do(t, http.MethodPost, path, map[string]string{
		"email":    email,
		"password": "secret",
		"name":     name,
		"adminKey": adminKey,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func (env *testEnv) signUpUser(t *testing.T, email, name string) authResponse {
	return env.signUp(t, "/api/v1/auth/sign-up", email, name, "")
}

func (env *testEnv) signUpAdmin(t *testing.T, email, name string) authResponse {
	return env.signUp(t, "/api/v1/auth/sign-up", email, name, "test-admin-secret")
}

func (env *testEnv) signUpSeller(t *testing.T, email, name string) authResponse {
	return env.signUp(t, "/api/v1/seller/sign-up", email, name, "")
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "refreshToken" {
			return ck
		}
	}
	t.Fatal("no refreshToken cookie in response")
	return nil
}
