package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/middleware/auth"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
)

type FavoriteHTTP struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHTTP) CreateFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.create_favorite")

	var req transport.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_favorite_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	favorite, err := h.Svc.Add(ctx, auth.UserID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_favorite_error", "status", 400, "reason", "missing productId")
			return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
		}
		if errors.Is(err, service.ErrAlreadyFavorite) {
			l.Warn("create_favorite_error", "status", 409, "reason", "already favorited")
			return echo.NewHTTPError(http.StatusConflict, "product is already in favorites")
		}
		l.Error("create_favorite_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add favorite")
	}

	l.Info("create_favorite_success", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHTTP) DeleteFavorite(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "favorite.delete_favorite")

	var req transport.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("delete_favorite_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.Remove(ctx, auth.UserID(c), req.ProductID); err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("delete_favorite_error", "status", 400, "reason", "missing productId")
			return echo.NewHTTPError(http.StatusBadRequest, "productId is required")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_favorite_error", "status", 404, "reason", "favorite not found")
			return echo.NewHTTPError(http.StatusNotFound, "favorite not found")
		}
		l.Error("delete_favorite_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove favorite")
	}

	l.Info("delete_favorite_success", "product_id", req.ProductID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "favorite removed",
	})
}
