package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

func (h *CategoryHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories")

	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		l.Error("get_categories_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load categories")
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHTTP) GetCategoriesTree(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get_categories_tree")

	tree, err := h.Svc.CategoriesTree(ctx)
	if err != nil {
		l.Error("get_categories_tree_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load categories")
	}

	return c.JSON(http.StatusOK, tree)
}

func (h *CategoryHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.Create(ctx, req.Name, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("create_category_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
		case errors.Is(err, service.ErrParentNotFound):
			l.Warn("create_category_error", "status", 404, "reason", "parent not found")
			return echo.NewHTTPError(http.StatusNotFound, "parent category not found")
		case errors.Is(err, service.ErrDuplicateSibling):
			l.Warn("create_category_error", "status", 409, "reason", "duplicate sibling")
			return echo.NewHTTPError(http.StatusConflict, "category with this name already exists under the same parent")
		}
		l.Error("create_category_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create category")
	}

	l.Info("create_category_success", "category_id", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CategoryHTTP) UpdateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.update_category")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("update_category_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("update_category_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	patch := service.CategoryPatch{Name: req.Name}
	if req.ParentID.Set {
		patch.SetParent = true
		patch.ParentID = req.ParentID.Value
	}

	category, err := h.Svc.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("update_category_error", "status", 404, "reason", "category not found")
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrValidation):
			l.Warn("update_category_error", "status", 400, "reason", "empty name")
			return echo.NewHTTPError(http.StatusBadRequest, "category name is required")
		case errors.Is(err, service.ErrParentNotFound):
			l.Warn("update_category_error", "status", 400, "reason", "parent not found")
			return echo.NewHTTPError(http.StatusBadRequest, "parent category not found")
		case errors.Is(err, service.ErrSelfParent):
			l.Warn("update_category_error", "status", 400, "reason", "self parent")
			return echo.NewHTTPError(http.StatusBadRequest, "category cannot be its own parent")
		case errors.Is(err, service.ErrCyclicParent):
			l.Warn("update_category_error", "status", 400, "reason", "cyclic parent")
			return echo.NewHTTPError(http.StatusBadRequest, "category cannot be moved under its own descendant")
		case errors.Is(err, service.ErrDuplicateSibling):
			l.Warn("update_category_error", "status", 400, "reason", "duplicate sibling")
			return echo.NewHTTPError(http.StatusBadRequest, "category with this name already exists under the same parent")
		}
		l.Error("update_category_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update category")
	}

	l.Info("update_category_success", "category_id", category.ID)
	return c.JSON(http.StatusOK, category)
}

func (h *CategoryHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.delete_category")

	id, err := parseID(c.Param("id"))
	if err != nil {
		l.Warn("delete_category_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.Delete(ctx, id); err != nil {
		var hasProducts *service.HasProductsError
		switch {
		case errors.Is(err, service.ErrNotFound):
			l.Warn("delete_category_error", "status", 404, "reason", "category not found")
			return echo.NewHTTPError(http.StatusNotFound, "category not found")
		case errors.Is(err, service.ErrHasChildren):
			l.Warn("delete_category_error", "status", 400, "reason", "has children")
			return echo.NewHTTPError(http.StatusBadRequest, "delete or move child categories first")
		case errors.As(err, &hasProducts):
			l.Warn("delete_category_error", "status", 400, "reason", "has products", "count", hasProducts.Count)
			return echo.NewHTTPError(http.StatusBadRequest, hasProducts.Error())
		}
		l.Error("delete_category_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot delete category")
	}

	l.Info("delete_category_success", "category_id", id)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "category deleted",
	})
}
