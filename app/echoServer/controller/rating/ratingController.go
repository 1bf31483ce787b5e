package rating

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/httperr"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	ratingsvc "github.com/sanjayz7/Home-Rental-Application5/service/rating"
)

type SubmitRatingReq struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type Controller struct {
	Svc ratingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func listingID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// PUT /v1/listings/:id/ratings
func (h *Controller) Submit(c echo.Context) error {
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req SubmitRatingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "score must be 1-5"})
	}

	rt, err := h.Svc.Submit(c.Request().Context(), jwtx.UserID(c), id, req.Score, req.Comment)
	if err != nil {
		return httperr.JSON(c, h.Log, "rating submit", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "rating saved", "rating": rt})
}

// GET /v1/listings/:id/ratings
func (h *Controller) List(c echo.Context) error {
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	rows, err := h.Svc.ForListing(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "rating list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/listings/:id/ratings/average
func (h *Controller) Average(c echo.Context) error {
	id, ok := listingID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	res, err := h.Svc.ListingAverage(c.Request().Context(), id)
	if err != nil {
		return httperr.JSON(c, h.Log, "rating average", err)
	}
	return c.JSON(http.StatusOK, res)
}
