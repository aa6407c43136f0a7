package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forgo/festival/api/internal/config"
	"github.com/forgo/festival/api/internal/database"
	"github.com/forgo/festival/api/internal/handler"
	"github.com/forgo/festival/api/internal/jobs"
	"github.com/forgo/festival/api/internal/middleware"
	"github.com/forgo/festival/api/internal/repository"
	"github.com/forgo/festival/api/internal/service"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	endpoint, err := config.ParseConnectionString(cfg.Database.ConnectionString)
	if err != nil {
		slog.Error("invalid CONNECTION_STRING", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db := database.NewSurrealDB(database.Config{
		URL:            endpoint.URL,
		User:           endpoint.User,
		Password:       endpoint.Password,
		Namespace:      endpoint.Namespace,
		Database:       endpoint.Database,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})

	// The connection is attempted once. When it fails the server still
	// starts: store-backed routes answer "Database error" and /health 503.
	if err := db.Connect(context.Background()); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
	} else {
		slog.Info("connected to database",
			slog.String("url", endpoint.URL),
			slog.String("namespace", endpoint.Namespace),
			slog.String("database", endpoint.Database),
		)
	}
	defer func() { _ = db.Close() }()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	festivalRepo := repository.NewFestivalRepository(db)

	// Services
	tokenAuth := service.NewOpaqueTokenAuth(userRepo)

	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo: userRepo,
		Issuer:   tokenAuth,
	})
	friendService := service.NewFriendService(service.FriendServiceConfig{
		UserRepo: userRepo,
		Auth:     tokenAuth,
	})
	festivalService := service.NewFestivalService(service.FestivalServiceConfig{
		UserRepo:     userRepo,
		FestivalRepo: festivalRepo,
		Auth:         tokenAuth,
	})
	profileService := service.NewProfileService(userRepo)

	var imageHost service.ImageHost = service.UnconfiguredHost{}
	if cfg.Upload.CloudinaryURL != "" {
		host, err := service.NewCloudinaryHost(cfg.Upload.CloudinaryURL, cfg.Upload.Folder)
		if err != nil {
			slog.Error("failed to initialize image host", slog.String("error", err.Error()))
			os.Exit(1)
		}
		imageHost = host
	} else {
		slog.Warn("CLOUDINARY_URL not set, photo uploads will fail")
	}
	photoService := service.NewPhotoService(service.PhotoServiceConfig{
		Host:   imageHost,
		TmpDir: cfg.Upload.TmpDir,
	})

	if cfg.Upload.SweepInterval > 0 {
		sweeper := jobs.NewStagingSweeper(photoService, cfg.Upload.SweepInterval, cfg.Upload.SweepMaxAge)
		sweeper.Start()
		defer sweeper.Stop()
	}

	// Handlers
	userHandler := handler.NewUserHandler(handler.UserHandlerConfig{
		Accounts:       authService,
		Friends:        friendService,
		Festivals:      festivalService,
		Profiles:       profileService,
		Photos:         photoService,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	mux := http.NewServeMux()
	handler.NewHealthHandler(db).RegisterRoutes(mux)
	handler.NewStyleHandler().RegisterRoutes(mux)
	userHandler.RegisterRoutes(mux, "")
	userHandler.RegisterRoutes(mux, "/users")

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		RPS:   cfg.RateLimit.RPS,
		Burst: cfg.RateLimit.Burst,
	})
	defer rateLimiter.Stop()

	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Compress,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
