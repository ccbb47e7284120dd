package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/wildtrail/booking-backend/internal/config"
	"github.com/wildtrail/booking-backend/internal/database"
	"github.com/wildtrail/booking-backend/internal/handler"
	"github.com/wildtrail/booking-backend/internal/middleware"
	"github.com/wildtrail/booking-backend/internal/repository"
	"github.com/wildtrail/booking-backend/internal/router"
	"github.com/wildtrail/booking-backend/internal/shopify"
)

func main() {
	// config.env mirrors the deployment environment for local runs; a
	// missing file is fine because real deployments inject variables.
	_ = godotenv.Load("config.env")

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("database initialization failed: %v", err)
	}
	log.Printf("database tables verified")

	gateway, configured := shopify.FromEnv()
	if !configured {
		log.Printf("shopify not configured - bookings will be created without checkouts")
	}

	// Redis is optional; a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable - cache and rate limit disabled")
	}
	cacheMW := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewRateLimit(config.LoadRateLimitConfig(), rdb)
	authMW := middleware.AdminAuth(cfg.AdminJWTSecret)

	bookings := repository.NewBookingRepo(db)
	products := repository.NewProductRepo(db)
	dateRanges := repository.NewDateRangeRepo(db)

	e := router.NewEcho()
	router.RegisterRoutes(e, handler.NewHealthHandler(db))
	router.RegisterBooking(e, handler.NewBookingHandler(bookings, products, gateway), rateMW)
	router.RegisterOrders(e, handler.NewOrderHandler(bookings), authMW)
	router.RegisterAdmin(e, handler.NewAdminHandler(bookings, products, dateRanges, gateway), authMW, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
