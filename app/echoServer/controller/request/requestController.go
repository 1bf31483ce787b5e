package request

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	"github.com/sanjayz7/Home-Rental-Application5/model"
	requestsvc "github.com/sanjayz7/Home-Rental-Application5/service/request"
)

type CreateRequestReq struct {
	ListingID int64  `json:"listing_id" validate:"required,gt=0"`
	Message   string `json:"message" validate:"required"`
}

type UpdateRequestStatusReq struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Response string `json:"response"`
}

type Controller struct {
	Svc requestsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// POST /v1/requests
func (h *Controller) Create(c echo.Context) error {
	var req CreateRequestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	pr, err := h.Svc.Create(c.Request().Context(), jwtx.UserID(c), req.ListingID, req.Message)
	if err != nil {
		return httperr.JSON(c, h.Log, "request create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "property request created",
		"request": pr,
	})
}

// PATCH /v1/requests/:id/status
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateRequestStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status value"})
	}

	pr, err := h.Svc.UpdateStatus(c.Request().Context(), jwtx.UserID(c), id,
		model.RequestStatus(req.Status), req.Response)
	if err != nil {
		return httperr.JSON(c, h.Log, "request status update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "request updated", "request": pr})
}

// DELETE /v1/requests/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.UserID(c), id); err != nil {
		return httperr.JSON(c, h.Log, "request delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "property request deleted"})
}

// GET /v1/requests/my
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "my requests", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/requests/inbox
func (h *Controller) Inbox(c echo.Context) error {
	rows, err := h.Svc.Inbox(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "owner requests", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
