package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"health-chatbot-backend/config"
	"health-chatbot-backend/controllers"
	"health-chatbot-backend/database"
	"health-chatbot-backend/middleware"
	"health-chatbot-backend/routes"
	"health-chatbot-backend/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := setupLogger(cfg.Environment)

	// Persistence is optional: without DATABASE_URL the bot runs with
	// in-memory state only (no message log, no user accounts).
	var db *database.Database
	if cfg.Database.URI != "" {
		db, err = database.Connect(cfg.Database, logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
	} else {
		logger.Warn().Msg("DATABASE_URL not set, running without persistence")
	}

	var messageRepo *database.MessageRepository
	var userRepo *database.UserRepository
	if db != nil {
		messageRepo = db.Messages()
		userRepo = db.Users()
	}

	// Services
	translation := services.NewTranslationService(cfg.Translation, logger)
	whatsapp := services.NewWhatsAppService(cfg.Twilio, logger)
	sms := services.NewSMSService(cfg.Twilio, logger)
	healthData := services.NewHealthDataService(logger)
	chatbot := services.NewChatbotService(cfg.Chatbot, translation, messageRepo, logger)
	users := services.NewUserService(userRepo, cfg.JWT, cfg.Security, logger)
	alerts := services.NewAlertScheduler(cfg.Alerts, cfg.MessagingConfigured(), whatsapp, sms, translation, healthData, logger)

	if cfg.Alerts.AutoStart {
		alerts.Start()
	}

	// HTTP server
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Security.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":            "healthy",
			"database":          db != nil,
			"messaging":         cfg.MessagingConfigured(),
			"scheduler_running": alerts.Running(),
			"active_sessions":   chatbot.SessionCount(),
		})
	})

	routes.SetupRoutes(router, routes.Dependencies{
		Chatbot:       controllers.NewChatbotController(chatbot, translation, messageRepo),
		WebSocket:     controllers.NewWebSocketController(chatbot, logger),
		Alerts:        controllers.NewAlertController(alerts),
		Auth:          controllers.NewAuthController(users),
		HealthData:    controllers.NewHealthDataController(healthData),
		Webhooks:      controllers.NewWebhookController(chatbot, translation, alerts, logger),
		Status:        controllers.NewStatusController(whatsapp, alerts, chatbot),
		JWTSecret:     cfg.JWT.Secret,
		WebhookVerify: middleware.VerifyTwilioSignature(cfg.Twilio.AuthToken, logger),
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("shutting down")

	alerts.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
	}

	if db != nil {
		if err := db.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("database disconnect failed")
		}
	}

	logger.Info().Msg("server stopped")
}

func setupLogger(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
