package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/openfab/reservation-server/internal/config"
	"github.com/openfab/reservation-server/internal/database"
	"github.com/openfab/reservation-server/internal/handler"
	"github.com/openfab/reservation-server/internal/mailer"
	"github.com/openfab/reservation-server/internal/middleware"
	"github.com/openfab/reservation-server/internal/queue"
	"github.com/openfab/reservation-server/internal/repository"
	"github.com/openfab/reservation-server/internal/router"
	"github.com/openfab/reservation-server/internal/service"
	"github.com/openfab/reservation-server/internal/utils"
	"github.com/openfab/reservation-server/internal/verify"
)

func main() {
	// Load .env when present; in production configuration comes from real
	// environment variables and the file is simply absent.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	// Repositories and collaborators.
	reservations := repository.NewReservationRepo(db)
	admins := repository.NewAdminRepo(db)
	gate := verify.NewTurnstile(cfg.TurnstileSecret)
	dispatcher := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.FrontendURL)
	events := queue.NewAMQPPublisher()

	reservationSvc := service.NewReservationService(reservations, gate, dispatcher, events, cfg.AdminEmail)
	adminSvc := service.NewAdminService(admins, cfg.JWTSecret, cfg.AccessTTLMin, cfg.BcryptCost)

	// Idempotent bootstrap: create the reserved admin account if absent.
	if err := adminSvc.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("admin seeding failed: %v", err)
	}

	e := echo.New()
	e.Validator = utils.NewRequestValidator()

	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), config.NewRedisClient())
	router.RegisterRoutes(e, handler.NewReservationHandler(reservationSvc), limiter)
	router.RegisterAdmin(e, handler.NewAdminHandler(adminSvc, reservationSvc), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
