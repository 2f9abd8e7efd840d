package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
)

type BrandHTTP struct {
	Svc *service.BrandService
}

func (h *BrandHTTP) GetBrands(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.get_brands")

	var categoryID *uint
	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			l.Warn("get_brands_error", "status", 400, "reason", "categoryId is not an integer", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "categoryId is not an integer")
		}
		categoryID = &id
	}

	brands, err := h.Svc.Brands(ctx, categoryID)
	if err != nil {
		l.Error("get_brands_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load brands")
	}

	return c.JSON(http.StatusOK, brands)
}

func (h *BrandHTTP) GetBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.get_brand")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_brand_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	brand, err := h.Svc.BrandByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_brand_error", "status", 404, "reason", "brand not found")
			return echo.NewHTTPError(http.StatusNotFound, "brand not found")
		}
		l.Error("get_brand_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load brand")
	}

	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHTTP) CreateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.create_brand")

	var req transport.CreateBrandRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_brand_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand, err := h.Svc.Create(ctx, req.Name, req.LogoURL)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_brand_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "brand name is required")
		}
		l.Error("create_brand_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create brand")
	}

	l.Info("create_brand_success", "brand_id", brand.ID)
	return c.JSON(http.StatusCreated, brand)
}

func (h *BrandHTTP) UpdateBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.update_brand")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("update_brand_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchBrandRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_brand_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	brand, err := h.Svc.Update(ctx, id, service.BrandPatch{
		Name:    req.Name,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("update_brand_error", "status", 404, "reason", "brand not found")
			return echo.NewHTTPError(http.StatusNotFound, "brand not found")
		}
		if errors.Is(err, service.ErrValidation) {
			l.Warn("update_brand_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "brand name is required")
		}
		l.Error("update_brand_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update brand")
	}

	l.Info("update_brand_success", "brand_id", brand.ID)
	return c.JSON(http.StatusOK, brand)
}

func (h *BrandHTTP) DeleteBrand(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "brand.delete_brand")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_brand_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_brand_error", "status", 404, "reason", "brand not found")
			return echo.NewHTTPError(http.StatusNotFound, "brand not found")
		}
		l.Error("delete_brand_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete brand")
	}

	l.Info("delete_brand_success", "brand_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "brand deleted",
	})
}
