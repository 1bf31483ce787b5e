// app/echoServer/jwtx/user.go
package jwtx

import "github.com/labstack/echo/v4"

// The auth middleware stores the verified identity claim on the context;
// controllers read it through these helpers and never re-derive it.

func UserID(c echo.Context) int64 {
	id, _ := c.Get("user_id").(int64)
	return id
}

func Role(c echo.Context) string {
	r, _ := c.Get("role").(string)
	return r
}
