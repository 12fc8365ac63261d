package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dosada05/competition-registry/config"
	"github.com/Dosada05/competition-registry/db"
	"github.com/Dosada05/competition-registry/handlers"
	"github.com/Dosada05/competition-registry/live"
	"github.com/Dosada05/competition-registry/repositories"
	api "github.com/Dosada05/competition-registry/routes"
	"github.com/Dosada05/competition-registry/services"
	"github.com/Dosada05/competition-registry/storage"
	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	// Подключение к базе данных
	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Инициализация загрузчика файлов (Cloudflare R2).
	// Хранилище необязательно: без него работает всё, кроме загрузки положений.
	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Warn("Cloudflare R2 is not configured, announcement uploads disabled")
	}

	// Инициализация WebSocket Hub
	wsHub := live.NewHub(logger)
	go wsHub.Run()
	logger.Info("WebSocket Hub started")

	// Инициализация репозиториев
	competitionRepo := repositories.NewPostgresCompetitionRepository(dbConn)
	raceRepo := repositories.NewPostgresRaceRepository(dbConn)
	startRepo := repositories.NewPostgresStartRepository(dbConn)
	categoryRepo := repositories.NewPostgresCategoryRepository(dbConn)
	specialCategoryRepo := repositories.NewPostgresSpecialCategoryRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	linkRepo := repositories.NewPostgresSpecialCategoryLinkRepository(dbConn)
	userRepo := repositories.NewPostgresUserRepository(dbConn)
	logger.Info("Repositories initialized")

	transactor := db.NewTransactor(dbConn)

	// Инициализация сервисов
	authService := services.NewAuthService(userRepo)
	competitionService := services.NewCompetitionService(competitionRepo, raceRepo, specialCategoryRepo, uploader)
	raceService := services.NewRaceService(raceRepo)
	startService := services.NewStartService(startRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	specialCategoryService := services.NewSpecialCategoryService(specialCategoryRepo)
	participantService := services.NewParticipantService(participantRepo, linkRepo)
	registrationService := services.NewRegistrationService(
		categoryRepo,
		specialCategoryRepo,
		participantRepo,
		linkRepo,
		transactor,
		wsHub,
	)
	rosterService := services.NewRosterService(
		competitionRepo,
		raceRepo,
		specialCategoryRepo,
		participantRepo,
		linkRepo,
	)
	logger.Info("Services initialized")

	// Инициализация обработчиков HTTP
	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	competitionHandler := handlers.NewCompetitionHandler(competitionService)
	raceHandler := handlers.NewRaceHandler(raceService)
	startHandler := handlers.NewStartHandler(startService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	specialCategoryHandler := handlers.NewSpecialCategoryHandler(specialCategoryService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService, participantService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		cfg.JWTSecretKey,
		authHandler,
		competitionHandler,
		raceHandler,
		startHandler,
		categoryHandler,
		specialCategoryHandler,
		registrationHandler,
		rosterHandler,
		webSocketHandler,
	)
	logger.Info("Routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
