package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mshelkov/marketplace/internal/logging"
	"github.com/mshelkov/marketplace/internal/service"
	"github.com/mshelkov/marketplace/internal/transport"
)

type AdminHTTP struct {
	Svc *service.AuthService
}

func (h *AdminHTTP) SetRole(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.set_role")

	userID, err := parseID(c.Param("userId"))
	if err != nil {
		l.Warn("set_role_error", "status", 400, "reason", "userId is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "userId is not an integer")
	}

	var req transport.SetRoleRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("set_role_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.SetRole(ctx, userID, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRole) {
			l.Warn("set_role_error", "status", 400, "reason", "invalid role")
			return echo.NewHTTPError(http.StatusBadRequest, "role must be USER, OWNER or ADMIN")
		}
		if errors.Is(err, service.ErrNotFound) {
			l.Warn("set_role_error", "status", 404, "reason", "user not found")
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		l.Error("set_role_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "cannot update role")
	}

	l.Info("set_role_success", "user_id", user.ID, "role", user.Role)
	return c.JSON(http.StatusOK, user)
}
