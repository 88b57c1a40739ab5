package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"AuthDesk/internal/config"
	"AuthDesk/internal/handlers"
	"AuthDesk/internal/middleware"
	"AuthDesk/internal/repo"
	"AuthDesk/internal/service"
)

const shutdownTimeout = 5 * time.Second

var errMissingTLSFiles = errors.New("https enabled but -tls-cert/-tls-key not set")

// serve слушает HTTP или, при EnableHTTPS, TLS с сертификатом из конфига.
func serve(srv *http.Server, cfg *config.Config) error {
	if !cfg.EnableHTTPS {
		return srv.ListenAndServe()
	}
	if cfg.TLSCertFile == "" || cfg.TLSKeyFile == "" {
		return errMissingTLSFiles
	}
	return srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
}

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	userService := service.NewUserService(userRepo)

	h := handlers.NewHandler(userService, sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", srv.Addr,
		"EnableHTTPS", cfg.EnableHTTPS,
		"TokenTTL", cfg.TokenTTL,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- serve(srv, cfg)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	case <-ctx.Done():
		sugar.Infow("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("Graceful shutdown failed", "error", err)
		}
	}
}
