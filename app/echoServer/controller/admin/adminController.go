package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	adminsvc "github.com/sanjayz7/Home-Rental-Application5/service/admin"
)

type UpdateUserReq struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required,oneof=user owner admin"`
}

type Controller struct {
	Svc adminsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// GET /v1/admin/stats
func (h *Controller) Stats(c echo.Context) error {
	stats, err := h.Svc.DashboardStats(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, h.Log, "dashboard stats", err)
	}
	return c.JSON(http.StatusOK, stats)
}

// GET /v1/admin/users
func (h *Controller) ListUsers(c echo.Context) error {
	users, err := h.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, h.Log, "list users", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}

// GET /v1/admin/users/:id
func (h *Controller) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	u, err := h.Svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "get user", err)
	}
	return c.JSON(http.StatusOK, u)
}

// PUT /v1/admin/users/:id
func (h *Controller) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	u, err := h.Svc.UpdateUser(c.Request().Context(), id, req.Name, req.Email, req.Role)
	if err != nil {
		return httperr.JSON(c, h.Log, "update user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user updated", "user": u})
}

// DELETE /v1/admin/users/:id
func (h *Controller) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.DeleteUser(c.Request().Context(), id); err != nil {
		return httperr.JSON(c, h.Log, "delete user", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "user deleted"})
}
