package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"lifeline/internal/config"
	"lifeline/internal/handlers"
	"lifeline/internal/middleware"
	"lifeline/internal/repositories/mongodb"
	"lifeline/internal/services"
	"lifeline/pkg/cache"
	"lifeline/pkg/database"
	"lifeline/pkg/logger"
	"lifeline/pkg/mail"
	"lifeline/pkg/payment"
	"lifeline/pkg/sms"
	"lifeline/pkg/ws"
	"lifeline/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:      logger.LogLevel(cfg.App.LogLevel),
		Format:     "json",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Close(ctx); err != nil {
			log.WithError(err).Warn("Failed to close MongoDB connection")
		}
	}()

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	defer redisClient.Close()

	provider, err := payment.NewProvider(cfg.Payment, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to init payment provider")
	}

	mailer := mail.NewSMTPMailer(cfg.SMTP, log)
	smsSender := sms.NewTwilioSender(cfg.SMS, log)
	wsHandler := ws.NewHandler(log)

	// repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	doctorRepo := mongodb.NewDoctorRepository(db.Database)
	bookingRepo := mongodb.NewBookingRepository(db.Database)
	reviewRepo := mongodb.NewReviewRepository(db.Database)
	messageRepo := mongodb.NewMessageRepository(db.Database)
	prescriptionRepo := mongodb.NewPrescriptionRepository(db.Database)

	// services
	notifier := services.NewNotificationService(mailer, smsSender, log)
	ratingService := services.NewRatingService(reviewRepo, doctorRepo, log)
	reviewService := services.NewReviewService(reviewRepo, doctorRepo, ratingService, log)
	authService := services.NewAuthService(userRepo, doctorRepo, notifier, cfg.Security.JWTSecret, cfg.App.ClientSiteURL, log)
	userService := services.NewUserService(userRepo)
	doctorService := services.NewDoctorService(doctorRepo, userRepo, notifier)
	prescriptionService := services.NewPrescriptionService(prescriptionRepo, userRepo, doctorRepo, notifier)
	messageService := services.NewMessageService(messageRepo, userRepo, doctorRepo, wsHandler.Hub(), log)
	bookingService := services.NewBookingService(
		bookingRepo, doctorRepo, userRepo,
		provider, redisClient, notifier,
		cfg.Payment.SuccessURL, cfg.Payment.CancelURL, cfg.Payment.Currency,
		cfg.Payment.PremiumPrice,
		log,
	)

	// handlers
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, bookingService, prescriptionService, log)
	doctorHandler := handlers.NewDoctorHandler(doctorService, bookingService, messageService, log)
	bookingHandler := handlers.NewBookingHandler(bookingService, log)
	reviewHandler := handlers.NewReviewHandler(reviewService, log)
	messageHandler := handlers.NewMessageHandler(messageService, log)
	prescriptionHandler := handlers.NewPrescriptionHandler(prescriptionService, log)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.Security.CORSAllowedOrigins))

	v1 := router.Group("/api/v1")
	{
		routes.SetupAuthRoutes(v1, authHandler)
		routes.SetupUserRoutes(v1, userHandler, cfg.Security.JWTSecret)
		routes.SetupDoctorRoutes(v1, doctorHandler, cfg.Security.JWTSecret)
		routes.SetupBookingRoutes(v1, bookingHandler, cfg.Security.JWTSecret)
		routes.SetupReviewRoutes(v1, reviewHandler, cfg.Security.JWTSecret)
		routes.SetupMessageRoutes(v1, messageHandler, wsHandler, cfg.Security.JWTSecret)
		routes.SetupPrescriptionRoutes(v1, prescriptionHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"mongodb": "up", "redis": "up"}

		if err := db.HealthCheck(c.Request.Context()); err != nil {
			checks["mongodb"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := redisClient.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "down"
			status = http.StatusServiceUnavailable
		}

		overall := "healthy"
		if status != http.StatusOK {
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":  overall,
			"version": cfg.App.Version,
			"checks":  checks,
		})
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Forced shutdown")
	}
}
