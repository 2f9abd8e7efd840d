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

type AuthHTTP struct {
	Svc      *service.AuthService
	Producer *mykafka.Producer
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Register(ctx, req.Email, req.Password, req.Name, req.AdminKey)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("register_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "email, password and name are required")
		}
		if errors.Is(err, service.ErrUserExists) {
			l.Warn("register_error", "status", 400, "reason", "duplicate email")
			return echo.NewHTTPError(http.StatusBadRequest, "user already exists")
		}
		l.Error("register_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot register user")
	}

	if err := h.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, "user_registered", echo.Map{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	}); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicUserEvents, "error", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))
	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"user":  user,
		"token": pair.AccessToken,
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, pair, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("login_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "email and password are required")
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			l.Warn("login_error", "status", 401)
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		l.Error("login_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in")
	}

	if err := h.Producer.PublishEvent(ctx, mykafka.TopicUserEvents, "user_logged_in", echo.Map{
		"user_id": user.ID,
	}); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicUserEvents, "error", err)
	}

	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))
	l.Info("login_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"user":  user,
		"token": pair.AccessToken,
	})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	cookie, err := c.Cookie(tokens.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		l.Warn("refresh_error", "status", 401, "reason", "missing refresh cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "missing refresh token")
	}

	pair, err := h.Svc.Refresh(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, service.ErrRefreshExpired) || errors.Is(err, service.ErrInvalidRefreshToken) {
			c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookieName, "/"))
			l.Warn("refresh_error", "status", 403, "error", err)
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired refresh token")
		}
		l.Error("refresh_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot refresh token")
	}

	c.SetCookie(tokens.CreateCookie(tokens.RefreshCookieName, pair.RefreshToken, "/", pair.RefreshExp))
	l.Info("refresh_success")
	return c.JSON(http.StatusOK, echo.Map{
		"token": pair.AccessToken,
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(tokens.RefreshCookieName); err == nil {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookieName, "/"))
			l.Error("logout_error", "status", 500, "reason", "cannot revoke refresh token", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot log out")
		}
	}

	c.SetCookie(tokens.DeleteCookie(tokens.RefreshCookieName, "/"))
	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged out",
	})
}

func (h *AuthHTTP) Profile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.profile")

	user, err := h.Svc.Profile(ctx, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load profile")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	var req transport.ProfileUpdateRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_profile_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.UpdateProfile(ctx, auth.UserID(c), service.ProfilePatch{
		Name:   req.Name,
		Phone:  req.Phone,
		Avatar: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_profile_error", "status", 400, "reason", "invalid fields")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid fields")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_profile_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("update_profile_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update profile")
	}

	l.Info("update_profile_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}
