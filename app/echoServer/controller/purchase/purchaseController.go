package purchase

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	"github.com/sanjayz7/Home-Rental-Application5/model"
	purchasesvc "github.com/sanjayz7/Home-Rental-Application5/service/purchase"
)

type Controller struct {
	Svc purchasesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/purchases
func (h *Controller) Create(c echo.Context) error {
	var req CreatePurchaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	id, err := h.Svc.Create(c.Request().Context(), jwtx.UserID(c), req.ListingID, req.Notes)
	if err != nil {
		return httperr.JSON(c, h.Log, "purchase create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message":     "purchase request created",
		"purchase_id": id,
		"status":      model.PurchasePending,
	})
}

// PATCH /v1/purchases/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status value"})
	}

	err := h.Svc.UpdateStatus(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id, model.PurchaseStatus(req.Status))
	if err != nil {
		return httperr.JSON(c, h.Log, "purchase status update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "purchase status updated"})
}

// DELETE /v1/purchases/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id); err != nil {
		return httperr.JSON(c, h.Log, "purchase delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "purchase deleted"})
}

// GET /v1/purchases/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	row, err := h.Svc.ByID(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "purchase detail", err)
	}
	return c.JSON(http.StatusOK, row)
}

// GET /v1/purchases/my
func (h *Controller) My(c echo.Context) error {
	rows, err := h.Svc.MyPurchases(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "my purchases", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/listings/:id/purchases
func (h *Controller) ByListing(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ByListing(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "listing purchases", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/admin/purchases
func (h *Controller) All(c echo.Context) error {
	rows, err := h.Svc.All(c.Request().Context())
	if err != nil {
		return httperr.JSON(c, h.Log, "all purchases", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
