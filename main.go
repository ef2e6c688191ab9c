package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"herbalgarden/internal/app"
	"herbalgarden/internal/config"
	"herbalgarden/internal/database"
	"herbalgarden/internal/logger"
	"herbalgarden/internal/repositories"
	"herbalgarden/internal/seed"
	"herbalgarden/internal/services"
	"herbalgarden/internal/storage"
	"herbalgarden/pkg/rabbitmq"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "herbal-garden: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("database ready", "driver", cfg.DBDriver)

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	plantRepo := repositories.NewGORMPlantRepository(db)
	noteRepo := repositories.NewGORMNoteRepository(db)
	quizRepo := repositories.NewGORMQuizRepository(db)
	imageRepo := repositories.NewGORMImageRepository(db)

	// --- Model storage ---
	var store storage.ModelStore
	switch cfg.ModelStorage {
	case "gcs":
		gcs, err := storage.NewGCSStore(ctx, log, cfg.ModelBucket, cfg.ModelDir)
		if err != nil {
			return err
		}
		defer gcs.Close()
		store = gcs
	default:
		local, err := storage.NewLocalStore(cfg.ModelDir)
		if err != nil {
			return err
		}
		store = local
	}

	if cfg.SeedFile != "" {
		file, err := seed.Load(cfg.SeedFile)
		if err != nil {
			return err
		}
		repos := seed.Repositories{Plants: plantRepo, Quizzes: quizRepo, Images: imageRepo, Models: store}
		if err := seed.Apply(ctx, log, repos, file); err != nil {
			return fmt.Errorf("failed to apply seed: %w", err)
		}
	}

	// --- RabbitMQ (optional) ---
	var events services.EventPublisher
	mqStatus := "disabled"
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, log)
		if err != nil {
			return fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
		}
		defer mqClient.Close()
		if err := mqClient.ConsumeNoteEvents(rabbitmq.LogNoteEvent(log)); err != nil {
			log.Warn("failed to start RabbitMQ consumer", "error", err)
		}
		events = mqClient
		mqStatus = "connected"
	}

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	guestService := services.NewGuestService(userRepo, cfg.GuestEmail)
	resolver := services.NewPlantResolver(plantRepo)

	application := app.New(app.Deps{
		Log:         log,
		Production:  cfg.IsProduction(),
		CORSOrigins: cfg.CORSOrigins,
		Auth:        authService,
		Users:       services.NewUserService(userRepo),
		Plants:      services.NewPlantService(plantRepo, resolver),
		Notes:       services.NewNoteService(noteRepo, resolver, guestService, events, log),
		Quizzes:     services.NewQuizService(quizRepo),
		Images:      services.NewImageService(imageRepo),
		Models:      services.NewModelService(plantRepo, store),
		Ready: func() map[string]string {
			return map[string]string{"rabbitmq": mqStatus, "modelStorage": cfg.ModelStorage}
		},
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "port", cfg.AppPort, "env", cfg.AppEnv)
		serverErr <- application.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("shutting down server")
	if err := application.Shutdown(); err != nil {
		log.Error("error during Fiber shutdown", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("server gracefully stopped")
	return nil
}
