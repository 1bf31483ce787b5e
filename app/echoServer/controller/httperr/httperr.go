// Package httperr maps service error codes onto HTTP responses. Every
// controller funnels its failures through JSON so the status mapping
// stays in one place.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

func JSON(c echo.Context, log *slog.Logger, op string, err error) error {
	if code := fail.CodeOf(err); code != "" {
		status := http.StatusInternalServerError
		switch code {
		case fail.NotFound:
			status = http.StatusNotFound
		case fail.Forbidden:
			status = http.StatusForbidden
		case fail.Conflict, fail.OutOfInventory, fail.InvalidArgument:
			status = http.StatusBadRequest
		case fail.InvariantViolation:
			// Indicates a bug, not a client mistake.
			log.Error(op, "code", code, "err", err)
		}
		return c.JSON(status, echo.Map{"message": err.Error(), "code": code})
	}

	// Aborted transactions under contention are safe to resubmit.
	if retryable(err) {
		return c.JSON(http.StatusConflict, echo.Map{
			"message":   "transaction aborted, please retry",
			"retryable": true,
		})
	}

	rid := c.Response().Header().Get(echo.HeaderXRequestID)
	log.Error(op, "err", err, "req_id", rid, "path", c.Path())
	return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
}

func retryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure ||
			pgErr.Code == pgerrcode.DeadlockDetected
	}
	return false
}
