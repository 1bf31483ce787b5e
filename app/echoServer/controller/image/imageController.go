package image

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	imagesvc "github.com/sanjayz7/Home-Rental-Application5/service/image"
)

type AddImageReq struct {
	URL       string `json:"url" validate:"required,url"`
	Name      string `json:"name"`
	Size      int64  `json:"size"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

type UpdateImageReq struct {
	Name      *string `json:"name"`
	IsPrimary *bool   `json:"is_primary"`
	SortOrder *int    `json:"sort_order"`
}

type Controller struct {
	Svc imagesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// GET /v1/listings/:id/images
func (h *Controller) ForListing(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ForListing(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "listing images", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/listings/:id/images
func (h *Controller) Add(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AddImageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	img, err := h.Svc.Add(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id, imagesvc.AddInput{
		URL:       req.URL,
		Name:      req.Name,
		Size:      req.Size,
		Width:     req.Width,
		Height:    req.Height,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "image add", err)
	}
	return c.JSON(http.StatusCreated, img)
}

// PATCH /v1/images/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateImageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	err := h.Svc.Update(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id, imagesvc.UpdateInput{
		Name:      req.Name,
		IsPrimary: req.IsPrimary,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "image update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "image updated"})
}

// DELETE /v1/images/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id); err != nil {
		return httperr.JSON(c, h.Log, "image delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "image deleted"})
}
