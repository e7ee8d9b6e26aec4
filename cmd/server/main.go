package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/answerai/answerai/internal/auth"
	"github.com/answerai/answerai/internal/config"
	"github.com/answerai/answerai/internal/database"
	"github.com/answerai/answerai/internal/email"
	"github.com/answerai/answerai/internal/handler"
	"github.com/answerai/answerai/internal/logger"
	"github.com/answerai/answerai/internal/middleware"
	"github.com/answerai/answerai/internal/repository"
	"github.com/answerai/answerai/internal/router"
	"github.com/answerai/answerai/internal/service"
	"github.com/answerai/answerai/internal/surprise"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", handler.Version).Msg("starting AnswerAI server")

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Access tokens are issued by the identity provider
	tokenSvc, err := auth.NewTokenService(cfg.Security.Tokens)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize token service")
	}

	userRepo := repository.NewUserRepository(db)

	dispatcher := email.NewDispatcher(cfg.Email.AppName, cfg.Email.Timeout, log)
	verifySvc := service.NewVerificationService(userRepo, rdb, dispatcher, cfg, log)
	log.Info().
		Str("provider", cfg.Email.Provider).
		Bool("enabled", cfg.EmailVerification.Enabled).
		Msg("email verification initialized")

	h := handler.New(db, rdb, log, cfg, surprise.Default(), verifySvc)
	mw := middleware.New(rdb, log, cfg)
	r := router.New(h, mw, cfg, tokenSvc, userRepo)

	// Verification requests block on email delivery
	writeTimeout := 15 * time.Second
	if t := cfg.Email.Timeout + 5*time.Second; t > writeTimeout {
		writeTimeout = t
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
