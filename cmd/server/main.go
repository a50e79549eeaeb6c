package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/taskboard/api/internal/adapters/handler/http"
	"github.com/taskboard/api/internal/adapters/handler/ws"
	"github.com/taskboard/api/internal/adapters/hash"
	"github.com/taskboard/api/internal/adapters/repository/postgres"
	"github.com/taskboard/api/internal/adapters/token"
	"github.com/taskboard/api/internal/config"
	"github.com/taskboard/api/internal/core/services"
	"github.com/taskboard/api/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.Env)
	slog.SetDefault(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		return
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("failed to ping database", slog.Any("error", err))
		return
	}

	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	hasher := hash.NewBcryptHasher()
	tokens := token.NewJWTManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub, tokens, userRepo, logger)

	userSvc := services.NewUserService(userRepo, hasher, tokens, hub)
	authSvc := services.NewAuthService(userRepo, hasher, tokens)
	taskSvc := services.NewTaskService(taskRepo, userRepo)

	handler := http.NewHandler(http.RouterConfig{
		UserHandler:       http.NewUserHandler(userSvc, authSvc, int(cfg.TokenTTL.Seconds())),
		TaskHandler:       http.NewTaskHandler(taskSvc),
		Tokens:            tokens,
		Users:             userRepo,
		Logger:            logger,
		RateLimitRequests: cfg.RateLimitRequests,
		RateLimitWindow:   cfg.RateLimitWindow,
		WSHandler:         wsHandler,
	})

	server := &stdhttp.Server{Addr: cfg.Addr, Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server listening", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
