package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/middleware/auth"
	"github.com/mshelkov/marketplace/internal/mykafka"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
)

type OrderHTTP struct {
	Svc      *service.CartService
	Producer *mykafka.Producer
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	item, err := h.Svc.Add(ctx, auth.UserID(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("create_order_error", "status", 400, "reason", "invalid fields")
			return echo.NewHTTPError(http.StatusBadRequest, "productId and quantity are required")
		}
		if errors.Is(err, service.ErrAlreadyInCart) {
			l.Warn("create_order_error", "status", 409, "reason", "already in cart")
			return echo.NewHTTPError(http.StatusConflict, "product is already in the cart")
		}
		l.Error("create_order_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot add product to cart")
	}

	l.Info("create_order_success", "product_id", req.ProductID)
	return c.JSON(http.StatusCreated, item)
}

func (h *OrderHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_cart")

	items, err := h.Svc.Items(ctx, auth.UserID(c))
	if err != nil {
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot load cart")
	}

	return c.JSON(http.StatusOK, items)
}

func (h *OrderHTTP) DeleteFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_from_cart")

	productID, err := parseID(c.Param("productId"))
	if err != nil {
		l.Warn("delete_from_cart_error", "status", 400, "reason", "productId is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "productId is not an integer")
	}

	if _, err := h.Svc.Remove(ctx, auth.UserID(c), productID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("delete_from_cart_error", "status", 404, "reason", "cart item not found")
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		l.Error("delete_from_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot remove cart item")
	}

	l.Info("delete_from_cart_success", "product_id", productID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "removed from cart",
	})
}

func (h *OrderHTTP) DeleteAllCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_all_cart")

	deleted, err := h.Svc.Clear(ctx, auth.UserID(c))
	if err != nil {
		l.Error("delete_all_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot clear cart")
	}

	l.Info("delete_all_cart_success", "deleted", deleted)
	return c.JSON(http.StatusOK, echo.Map{
		"deleted": deleted,
	})
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	order, items, err := h.Svc.Checkout(ctx, auth.UserID(c))
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			l.Warn("checkout_error", "status", 400, "reason", "empty or invalid cart")
			return echo.NewHTTPError(http.StatusBadRequest, "cart is empty or contains missing products")
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot create order")
	}

	if err := h.Producer.PublishEvent(ctx, mykafka.TopicOrderEvents, "order_created", echo.Map{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
	}); err != nil {
		l.Warn("publish_failed", "topic", mykafka.TopicOrderEvents, "error", err)
	}

	l.Info("checkout_success", "order_id", order.ID)
	return c.JSON(http.StatusCreated, echo.Map{
		"order": order,
		"items": items,
	})
}
