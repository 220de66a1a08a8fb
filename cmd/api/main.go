package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/eduresult/eduresult-go-api/internal/config"
	"github.com/eduresult/eduresult-go-api/internal/database"
	"github.com/eduresult/eduresult-go-api/internal/handler"
	"github.com/eduresult/eduresult-go-api/internal/middleware"
	"github.com/eduresult/eduresult-go-api/internal/repository"
	"github.com/eduresult/eduresult-go-api/internal/router"
	"github.com/eduresult/eduresult-go-api/internal/service"
	"github.com/eduresult/eduresult-go-api/pkg/ai"
	cloud "github.com/eduresult/eduresult-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var advisor ai.Advisor
	if cfg.OpenAIAPIKey != "" {
		openAIAdvisor, err := ai.NewOpenAIAdvisor(ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		})
		if err != nil {
			log.Fatalf("failed to create openai advisor: %v", err)
		}
		advisor = openAIAdvisor
	} else {
		logger.Warn().Msg("no openai api key configured, remarks fall back to the stock sentence")
	}

	var uploader service.LogoUploader
	if cfg.CloudinaryCloudName != "" {
		cloudService, err := cloud.New(cloud.Config{
			CloudName: cfg.CloudinaryCloudName,
			APIKey:    cfg.CloudinaryAPIKey,
			APISecret: cfg.CloudinaryAPISecret,
			Folder:    cfg.CloudinaryUploadFolder,
		}, logger)
		if err != nil {
			log.Fatalf("failed to create cloudinary client: %v", err)
		}
		uploader = cloudService
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	recordStore := repository.NewRecordStore(redisClient, logger)
	userStore := repository.NewUserStore(redisClient, logger)

	studentService := service.NewStudentService(recordStore, advisor, validate, cfg.AITimeout, logger)
	extractionService := service.NewExtractionService(advisor, cfg.MaxUploadMB, cfg.AITimeout, logger)
	exportService := service.NewExportService(logger)
	institutionService := service.NewInstitutionService(recordStore, uploader, validate, logger)
	dashboardService := service.NewDashboardService(recordStore, redisClient, cfg.DashboardCacheTTL, logger)
	authService := service.NewAuthService(userStore, validate, cfg.JWTSecret, cfg.JWTTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:        handler.NewAuthHandler(authService, logger),
		PublicHandler:      handler.NewPublicHandler(studentService, institutionService, logger),
		StudentHandler:     handler.NewStudentHandler(studentService, exportService, extractionService, logger),
		InstitutionHandler: handler.NewInstitutionHandler(institutionService, logger),
		DashboardHandler:   handler.NewDashboardHandler(dashboardService, logger),
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
