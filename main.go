// Package main home rental marketplace API.
//
// @title           Home Rental API
// @version         1.0
// @description     Property rental marketplace (listings, purchases, requests, ratings).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer"
	adminctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/admin"
	authctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/auth"
	imagectrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/image"
	listingctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/listing"
	purchasectrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/purchase"
	requestctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/request"
	ratingctrl "github.com/sanjayz7/Home-Rental-Application5/app/echoServer/controller/rating"
	"github.com/sanjayz7/Home-Rental-Application5/app/echoServer/validation"
	"github.com/sanjayz7/Home-Rental-Application5/config"
	adminrepo "github.com/sanjayz7/Home-Rental-Application5/repository/admin"
	geocoderepo "github.com/sanjayz7/Home-Rental-Application5/repository/geocode"
	imagerepo "github.com/sanjayz7/Home-Rental-Application5/repository/image"
	listingrepo "github.com/sanjayz7/Home-Rental-Application5/repository/listing"
	purchaserepo "github.com/sanjayz7/Home-Rental-Application5/repository/purchase"
	requestrepo "github.com/sanjayz7/Home-Rental-Application5/repository/request"
	ratingrepo "github.com/sanjayz7/Home-Rental-Application5/repository/rating"
	userrepo "github.com/sanjayz7/Home-Rental-Application5/repository/user"
	adminsvc "github.com/sanjayz7/Home-Rental-Application5/service/admin"
	authsvc "github.com/sanjayz7/Home-Rental-Application5/service/auth"
	imagesvc "github.com/sanjayz7/Home-Rental-Application5/service/image"
	"github.com/sanjayz7/Home-Rental-Application5/service/ledger"
	listingsvc "github.com/sanjayz7/Home-Rental-Application5/service/listing"
	purchasesvc "github.com/sanjayz7/Home-Rental-Application5/service/purchase"
	ratingsvc "github.com/sanjayz7/Home-Rental-Application5/service/rating"
	requestsvc "github.com/sanjayz7/Home-Rental-Application5/service/request"
	"github.com/sanjayz7/Home-Rental-Application5/util/database"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB: *sql.DB over pgx
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	lr := listingrepo.New(db)
	pr := purchaserepo.New(db)
	rr := requestrepo.New(db)
	rtr := ratingrepo.New(db)
	ir := imagerepo.New(db)
	ar := adminrepo.New(db)
	geo := geocoderepo.NewHTTP(cfg.ApiNinjasKey)

	// services
	led := ledger.New(lr, log)
	as := authsvc.New(ur, cfg.JWTSecret)
	ls := listingsvc.New(db, lr, ir, rtr, rr, pr, geo, log)
	ps := purchasesvc.New(db, pr, lr, led)
	rs := requestsvc.New(rr, lr)
	rts := ratingsvc.New(rtr, lr)
	is := imagesvc.New(db, ir, lr)
	ads := adminsvc.New(ar, ur)

	// controllers
	val := validation.New()
	v := val.Rules()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	listingC := &listingctrl.Controller{Svc: ls, V: v, Log: log}
	purchaseC := &purchasectrl.Controller{Svc: ps, V: v, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, V: v, Log: log}
	ratingC := &ratingctrl.Controller{Svc: rts, V: v, Log: log}
	imageC := &imagectrl.Controller{Svc: is, V: v, Log: log}
	adminC := &adminctrl.Controller{Svc: ads, V: v, Log: log}

	e := echo.New()
	e.HideBanner = true
	e.Validator = val
	echoServer.RegisterMiddlewares(e)
	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Listing:   listingC,
		Purchase:  purchaseC,
		Request:   requestC,
		Rating:    ratingC,
		Image:     imageC,
		Admin:     adminC,
		JWTSecret: cfg.JWTSecret,
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
