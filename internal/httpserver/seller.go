package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/middleware/auth"
	"github.com/mshelkov/marketplace/internal/mykafka"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/tokens"
	"github.com/mshelkov/marketplace/internal/transport"
)

type SellerHTTP struct {
	Auth     *service.AuthService
	Store    *service.StoreService
	Producer *mykafka.Producer
}

func (h *SellerHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("seller_register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Auth.RegisterSeller(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("seller_register_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "email, password and name are required")
		}
		if errors.Is(err, service.ErrUserExists) {
			l.Warn("seller_register_error", "status", 400, "reason", "duplicate email")
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		l.Error("seller_register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register seller")
	}

	if err := h.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, "user_registered", echo.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicUserEvents, "error", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))
	l.Info("seller_register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": pair.AccessToken,
	})
}

func (h *SellerHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("seller_login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("seller_login_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("seller_login_error", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("seller_login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))
	l.Info("seller_login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": pair.AccessToken,
	})
}

func (h *SellerHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.profile")

	user, err := h.Store.SellerProfile(ctx, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("seller_profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("seller_profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *SellerHTTP) CreateStore(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "seller.create_store")

	var req transport.CreateStoreRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_store_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	store, err := h.Store.CreateStore(ctx, auth.UserID(c), service.StoreParams{
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Address:     req.Address,
		Region:      req.Region,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_store_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "store name is required")
		}
		if errors.Is(err, service.ErrStoreExists) {
			l.Warn("create_store_error", "status", 400, "reason", "owner already has a store")
			return echo.NewHTTPError(http.StatusBadRequest, "you already have a store")
		}
		l.Error("create_store_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create store")
	}

	l.Info("create_store_success", "store_id", store.ID)
	return c.JSON(http.StatusCreated, store)
}
