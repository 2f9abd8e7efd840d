package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/es"
	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/middleware/auth"
	"github.com/mshelkov/marketplace/internal/mykafka"
	"github.com/mshelkov/marketplace/internal/repo"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
	"github.com/mshelkov/marketplace/internal/util"
)

type ProductHTTP struct {
	Svc      *service.ProductService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Create(ctx, auth.UserID(c), service.CreateProductParams{
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Tags:        req.Tags,
		Price:       req.Price,
		NewPrice:    req.NewPrice,
		StockCount:  req.StockCount,
	})
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_product_error", "status", 400, "reason", "missing fields")
			return echo.NewHTTPError(http.StatusBadRequest, "categoryId, brandId, title, description and price are required")
		}
		if errors.Is(err, service.ErrNoStore) {
			l.Warn("create_product_error", "status", 400, "reason", "no store")
			return echo.NewHTTPError(http.StatusBadRequest, "create a store first")
		}
		l.Error("create_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create product")
	}

	if h.ES != nil {
		if err := es.IndexProduct(ctx, h.ES, es.ProductIndex, product); err != nil {
			l.Warn("es_index_failed", "product_id", product.ID, "error", err)
		}
	}
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, "product_created", product); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicProductEvents, "error", err)
	}

	l.Info("create_product_success", "product_id", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) GetMyProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_my_products")

	products, err := h.Svc.StoreProducts(ctx, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNoStore) {
			l.Warn("get_my_products_error", "status", 404, "reason", "no store")
			return echo.NewHTTPError(http.StatusNotFound, "store not found")
		}
		l.Error("get_my_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) GetProductsForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_products_for_user")

	filter, err := publicFilter(c)
	if err != nil {
		l.Warn("get_products_for_user_error", "status", 400, "reason", "invalid filter", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid filter")
	}

	products, err := h.Svc.PublicProducts(ctx, filter)
	if err != nil {
		l.Error("get_products_for_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load products")
	}

	return c.JSON(http.StatusOK, products)
}

func (h *ProductHTTP) GetProductForUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product_for_user")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("get_product_for_user_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	product, err := h.Svc.ProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("get_product_for_user_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		l.Error("get_product_for_user_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load product")
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) PatchProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.patch_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("patch_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("patch_product_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	product, err := h.Svc.Update(ctx, auth.UserID(c), id, service.ProductPatch{
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Tags:        req.Tags,
		Price:       req.Price,
		NewPrice:    req.NewPrice,
		StockCount:  req.StockCount,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("patch_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("patch_product_error", "status", 403, "reason", "not the store owner")
			return echo.NewHTTPError(http.StatusForbidden, "you do not own this product")
		case errors.Is(err, service.ErrValidation):
			l.Warn("patch_product_error", "status", 400, "reason", "invalid fields")
			return echo.NewHTTPError(http.StatusBadRequest, "invalid fields")
		}
		l.Error("patch_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update product")
	}

	if h.ES != nil {
		if err := es.IndexProduct(ctx, h.ES, es.ProductIndex, product); err != nil {
			l.Warn("es_index_failed", "product_id", product.ID, "error", err)
		}
	}

	l.Info("patch_product_success", "product_id", product.ID)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_product_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, auth.UserID(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_product_error", "status", 404, "reason", "product not found")
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("delete_product_error", "status", 403, "reason", "not the store owner")
			return echo.NewHTTPError(http.StatusForbidden, "you do not own this product")
		}
		l.Error("delete_product_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete product")
	}

	if h.ES != nil {
		if err := es.DeleteProductDoc(ctx, h.ES, es.ProductIndex, id); err != nil {
			l.Warn("es_delete_failed", "product_id", id, "error", err)
		}
	}
	if err := h.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, "product_deleted", echo.Map{
		"product_id": id,
	}); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicProductEvents, "error", err)
	}

	l.Info("delete_product_success", "product_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "product deleted",
	})
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	query := c.QueryParam("q")
	if query == "" {
		l.Warn("search_products_error", "status", 400, "reason", "empty query")
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}
	if h.ES == nil {
		l.Error("search_products_error", "status", 503, "reason", "search unavailable")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is unavailable")
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := es.SearchProducts(ctx, h.ES, es.ProductIndex, query, offset, limit)
	if err != nil {
		l.Error("search_products_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot search products")
	}

	l.Info("search_products_success", "total", total)
	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func publicFilter(c echo.Context) (repo.ProductFilter, error) {
	var f repo.ProductFilter

	if raw := c.QueryParam("categoryId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return f, err
		}
		f.CategoryID = &id
	}
	if raw := c.QueryParam("brandId"); raw != "" {
		id, err := parseID(raw)
		if err != nil {
			return f, err
		}
		f.BrandID = &id
	}
	if raw := c.QueryParam("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, err
		}
		f.MinPrice = &v
	}
	if raw := c.QueryParam("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return f, err
		}
		f.MaxPrice = &v
	}
	f.InStock = c.QueryParam("inStock") == "true"

	return f, nil
}
