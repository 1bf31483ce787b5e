// app/echoServer/middleware_test.go
package echoServer

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/jwtx"
	"github.com/sanjayz7/Home-Rental-Application5/model"
	jwtutil "github.com/sanjayz7/Home-Rental-Application5/util/jwt"
)

const testSecret = "test-secret"

// authedEcho wires the same middleware stack Register puts in front of
// the authenticated group, plus probe routes reading the identity.
func authedEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	g := e.Group("/v1")
	g.Use(JWTAuth(testSecret))
	g.Use(extractIdentity)

	g.GET("/whoami", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": jwtx.UserID(c),
			"role":    jwtx.Role(c),
		})
	})

	adm := g.Group("/admin", AdminOnly())
	adm.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func get(e *echo.Echo, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthGroup_BearerToken(t *testing.T) {
	e := authedEcho(t)
	tok, err := jwtutil.Issue(testSecret, 42, model.RoleOwner, 1)
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", "Bearer "+tok)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, float64(42), body["user_id"])
	require.Equal(t, model.RoleOwner, body["role"])
}

func TestAuthGroup_BareToken(t *testing.T) {
	e := authedEcho(t)
	tok, err := jwtutil.Issue(testSecret, 7, model.RoleUser, 1)
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", tok)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthGroup_MissingHeader(t *testing.T) {
	e := authedEcho(t)
	rec := get(e, "/v1/whoami", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthGroup_WrongSecret(t *testing.T) {
	e := authedEcho(t)
	tok, err := jwtutil.Issue("other-secret", 42, model.RoleUser, 1)
	require.NoError(t, err)

	rec := get(e, "/v1/whoami", "Bearer "+tok)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminGroup_RoleGate(t *testing.T) {
	e := authedEcho(t)

	userTok, err := jwtutil.Issue(testSecret, 2, model.RoleUser, 1)
	require.NoError(t, err)
	rec := get(e, "/v1/admin/ping", "Bearer "+userTok)
	require.Equal(t, http.StatusForbidden, rec.Code)

	adminTok, err := jwtutil.Issue(testSecret, 1, model.RoleAdmin, 1)
	require.NoError(t, err)
	rec = get(e, "/v1/admin/ping", "Bearer "+adminTok)
	require.Equal(t, http.StatusOK, rec.Code)
}
