package echoServer

import (
	"net/http"

	"github.com/labstack/echo/v4"

	adminctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/admin"
	authctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/auth"
	imagectrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/image"
	listingctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/listing"
	purchasectrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/purchase"
	requestctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/request"
	ratingctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/rating"
)

type C struct {
	Auth      *authctrl.Controller
	Listing   *listingctrl.Controller
	Purchase  *purchasectrl.Controller
	Request   *requestctrl.Controller
	Rating    *ratingctrl.Controller
	Image     *imagectrl.Controller
	Admin     *adminctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/users/register", c.Auth.Register)
	pub.POST("/users/login", c.Auth.Login)

	pub.GET("/listings", c.Listing.Search)
	pub.GET("/listings/:id", c.Listing.Detail)
	pub.GET("/listings/:id/images", c.Image.ForListing)
	pub.GET("/listings/:id/ratings", c.Rating.List)
	pub.GET("/listings/:id/ratings/average", c.Rating.Average)

	// Auth
	auth := e.Group("/v1")
	auth.Use(JWTAuth(c.JWTSecret))
	auth.Use(extractIdentity)

	auth.GET("/users/me", c.Auth.Me)

	// Listings (mine must register before :id routes would shadow it;
	// echo matches static segments first, but keep the order explicit)
	auth.GET("/listings/mine", c.Listing.Mine)
	auth.POST("/listings", c.Listing.Create)
	auth.PUT("/listings/:id", c.Listing.Update)
	auth.DELETE("/listings/:id", c.Listing.Delete)
	auth.POST("/listings/:id/images", c.Image.Add)
	auth.PATCH("/images/:id", c.Image.Update)
	auth.DELETE("/images/:id", c.Image.Delete)

	// Purchases
	auth.POST("/purchases", c.Purchase.Create)
	auth.GET("/purchases/my", c.Purchase.My)
	auth.GET("/purchases/:id", c.Purchase.Detail)
	auth.GET("/listings/:id/purchases", c.Purchase.ByListing)
	auth.PATCH("/purchases/:id/status", c.Purchase.UpdateStatus)
	auth.DELETE("/purchases/:id", c.Purchase.Delete)

	// Property requests
	auth.POST("/requests", c.Request.Create)
	auth.GET("/requests/my", c.Request.Mine)
	auth.GET("/requests/inbox", c.Request.Inbox)
	auth.PATCH("/requests/:id/status", c.Request.UpdateStatus)
	auth.DELETE("/requests/:id", c.Request.Delete)

	// Ratings
	auth.PUT("/listings/:id/ratings", c.Rating.Submit)

	// Admin
	adm := auth.Group("/admin", AdminOnly())
	adm.GET("/stats", c.Admin.Stats)
	adm.GET("/purchases", c.Purchase.All)
	adm.GET("/users", c.Admin.ListUsers)
	adm.GET("/users/:id", c.Admin.GetUser)
	adm.PUT("/users/:id", c.Admin.UpdateUser)
	adm.DELETE("/users/:id", c.Admin.DeleteUser)
}

// extractIdentity moves the verified sub/role claims into typed context
// values so controllers never touch the raw token. JWTAuth stores the
// map ParseAuth returned under "user".
func extractIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, ok := ctx.Get("user").(map[string]any)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
		}
		role, _ := claims["role"].(string)

		ctx.Set("user_id", int64(sub))
		ctx.Set("role", role)
		return next(ctx)
	}
}
