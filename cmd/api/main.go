package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"quickcourt/internal/config"
	"quickcourt/internal/database"
	"quickcourt/internal/events"
	"quickcourt/internal/middleware"
	"quickcourt/internal/modules/booking"
	"quickcourt/internal/modules/catalog"
	"quickcourt/internal/modules/review"
	jwtsvc "quickcourt/internal/pkg/jwt"
	"quickcourt/internal/repository"
)

func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	venueRepo := repository.NewVenueRepository(db)
	courtRepo := repository.NewCourtRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	blockedRepo := repository.NewBlockedWindowRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	rdb := config.NewRedisClient(cfg)

	var publisher booking.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = events.NewPublisher(cfg.AMQPURL)
	}

	bookingService := booking.NewService(
		bookingRepo,
		courtRepo,
		availabilityRepo,
		blockedRepo,
		venueRepo,
		booking.NewCalendarResolver(cfg.HolidayDates),
		publisher,
	)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(venueRepo, courtRepo, availabilityRepo, blockedRepo, bookingRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo, venueRepo)
	reviewHandler := review.NewHandler(reviewService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		public := v1.Group("/")
		public.Use(middleware.ResponseCache(rdb, cfg.CacheTTL))
		{
			bookingHandler.RegisterPublicRoutes(public)
			catalogHandler.RegisterPublicRoutes(public)
			reviewHandler.RegisterPublicRoutes(public)
		}

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
		}

		// venue management
		owner := v1.Group("/owner")
		owner.Use(middleware.JWTAuth(j), middleware.OwnerOnly())
		{
			catalogHandler.RegisterOwnerRoutes(owner)
		}
	}

	log.Println("Listening on :" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
