// controller/httperr/httperr_test.go
package httperr

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sanjayz7/Home-Rental-Application5/util/fail"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, JSON(c, log, "test op", err))
	return rec
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		code fail.Code
		want int
	}{
		{fail.NotFound, http.StatusNotFound},
		{fail.Forbidden, http.StatusForbidden},
		{fail.OutOfInventory, http.StatusBadRequest},
		{fail.Conflict, http.StatusBadRequest},
		{fail.InvalidArgument, http.StatusBadRequest},
		{fail.InvariantViolation, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := respond(t, fail.New(tc.code, "boom"))
		require.Equal(t, tc.want, rec.Code, "code=%s", tc.code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, string(tc.code), body["code"])
	}
}

func TestAbortedTransactionIsRetryable(t *testing.T) {
	for _, pgCode := range []string{pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected} {
		rec := respond(t, &pgconn.PgError{Code: pgCode})
		require.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, true, body["retryable"])
	}
}

func TestUncodedErrorHidesDetail(t *testing.T) {
	rec := respond(t, errors.New("pq: connection reset"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "connection reset")
}
