package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"schoolsync/backend/config"
	"schoolsync/backend/internal/api/handler"
	"schoolsync/backend/internal/api/router"
	"schoolsync/backend/internal/calendar"
	"schoolsync/backend/internal/repository"
	"schoolsync/backend/internal/service"
	"schoolsync/backend/pkg/database"
	"schoolsync/backend/pkg/jwt"
	"schoolsync/backend/pkg/logger"
	"schoolsync/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, log); err != nil {
		return err
	}

	// Redis is optional: without it token revocation and rate limiting
	// degrade, everything else keeps working.
	cache, err := redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, token blacklist and rate limits disabled", zap.Error(err))
		cache = nil
	} else {
		defer cache.Close()
	}

	sessions, err := calendar.NewSessionManager(&cfg.Calendar, log)
	if err != nil {
		return err
	}
	gateway := calendar.NewGoogleGateway(&cfg.Calendar, sessions, log)

	tokens := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, gateway, sessions, tokens, cache, log)
	h := handler.NewHandler(svc, log)
	engine := router.New(cfg, h, tokens, cache, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
