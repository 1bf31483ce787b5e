package listing

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	listingsvc "github.com/sanjayz7/Home-Rental-Application5/service/listing"
)

type Controller struct {
	Svc listingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func paramID(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// GET /v1/listings
func (h *Controller) Search(c echo.Context) error {
	f := listingsvc.SearchFilter{
		Query:     c.QueryParam("q"),
		City:      c.QueryParam("city"),
		Category:  c.QueryParam("category"),
		Furnished: c.QueryParam("furnished"),
		Verified:  c.QueryParam("verified") == "true",
	}
	if v := c.QueryParam("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}
	if v := c.QueryParam("min_beds"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinBeds = &n
		}
	}
	if v := c.QueryParam("min_baths"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinBaths = &n
		}
	}
	f.Page, _ = strconv.Atoi(c.QueryParam("page"))
	f.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))

	total, items, err := h.Svc.Search(c.Request().Context(), f)
	if err != nil {
		return httperr.JSON(c, h.Log, "listing search", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "items": items})
}

// GET /v1/listings/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	l, err := h.Svc.ByID(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "listing detail", err)
	}
	return c.JSON(http.StatusOK, l)
}

// GET /v1/listings/mine
func (h *Controller) Mine(c echo.Context) error {
	rows, err := h.Svc.Mine(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return httperr.JSON(c, h.Log, "my listings", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /v1/listings
func (h *Controller) Create(c echo.Context) error {
	var req CreateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": err.Error()})
	}

	l, err := h.Svc.Create(c.Request().Context(), jwtx.UserID(c), listingsvc.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Deposit:     req.Deposit,
		Address:     req.Address,
		City:        req.City,
		Category:    req.Category,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqft:    req.AreaSqft,
		Furnished:   req.Furnished,
		TotalUnits:  req.TotalUnits,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "listing create", err)
	}
	return c.JSON(http.StatusCreated, l)
}

// PUT /v1/listings/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateListingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}

	l, err := h.Svc.Update(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id, listingsvc.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Deposit:     req.Deposit,
		Address:     req.Address,
		City:        req.City,
		Category:    req.Category,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		AreaSqft:    req.AreaSqft,
		Furnished:   req.Furnished,
		Verified:    req.Verified,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return httperr.JSON(c, h.Log, "listing update", err)
	}
	return c.JSON(http.StatusOK, l)
}

// DELETE /v1/listings/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.UserID(c), jwtx.Role(c), id); err != nil {
		return httperr.JSON(c, h.Log, "listing delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "listing deleted"})
}
