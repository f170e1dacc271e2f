package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"marinaclub/internal/config"
	"marinaclub/internal/database"
	"marinaclub/internal/middleware"
	"marinaclub/internal/modules/activity"
	"marinaclub/internal/modules/auth"
	"marinaclub/internal/modules/booking"
	"marinaclub/internal/modules/catalog"
	"marinaclub/internal/modules/fleet"
	"marinaclub/internal/modules/payment"
	jwtsvc "marinaclub/internal/pkg/jwt"
	"marinaclub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// connect once; the readiness gate blocks until the lifecycle settles
	lifecycle := database.NewLifecycle()
	go lifecycle.Init(cfg.DatabaseURL)

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	db, err := lifecycle.WaitReady(waitCtx)
	cancel()
	if err != nil {
		log.Fatalf("database not ready: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	berthRepo := repository.NewBerthRepository(db)
	vesselRepo := repository.NewVesselRepository(db)
	tariffRepo := repository.NewTariffRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(clubRepo, berthRepo, tariffRepo, userRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	fleetService := fleet.NewService(vesselRepo)
	fleetHandler := fleet.NewHandler(fleetService)

	scheduler := payment.NewScheduleBuilder(cfg.ImmediateDueDelay)
	bookingService := booking.NewService(bookingRepo, clubRepo, berthRepo, vesselRepo, tariffRepo, paymentRepo, scheduler)
	bookingHandler := booking.NewHandler(bookingService)

	paymentService := payment.NewService(paymentRepo, bookingRepo, clubRepo, log.Printf)
	paymentHandler := payment.NewHandler(paymentService)

	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	sweeper := payment.NewSweeper(paymentRepo, bookingRepo, cfg.SweepGrace, cfg.ImmediateDueSpan, log.Printf).
		WithOverduePenalty(cfg.OverduePenalty)
	go sweeper.Start(ctx, cfg.SweepInterval)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.ActivityLogger(activityService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": lifecycle.State()})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			fleetHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			paymentHandler.RegisterRoutes(protected)

			owner := protected.Group("/")
			owner.Use(middleware.ClubOwnerOrAdmin())
			{
				catalogHandler.RegisterOwnerRoutes(owner)
				bookingHandler.RegisterClubRoutes(owner)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminOnly())
			{
				authHandler.RegisterAdminRoutes(admin)
				fleetHandler.RegisterAdminRoutes(admin)
				paymentHandler.RegisterAdminRoutes(admin)
				activityHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
