// Command api runs the Touch of Elegance web server.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/deppfellow/touch-of-elegance/internal/config"
	"github.com/deppfellow/touch-of-elegance/internal/handler"
	"github.com/deppfellow/touch-of-elegance/internal/logger"
	"github.com/deppfellow/touch-of-elegance/internal/repository"
	"github.com/deppfellow/touch-of-elegance/internal/router"
	"github.com/deppfellow/touch-of-elegance/internal/server"
	"github.com/deppfellow/touch-of-elegance/internal/service"
	"github.com/deppfellow/touch-of-elegance/web"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	assets := web.Public()
	handlers := handler.NewHandlers(srv, services, assets)
	r := router.NewRouter(srv, handlers, assets)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start server")
		}
		return
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), server.ShutdownGracePeriod)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error().Err(err).Msg("forced shutdown after timeout")
		} else {
			log.Error().Err(err).Msg("server shutdown failed")
		}
		cancel()
		os.Exit(1)
	}

	log.Info().Msg("server exited properly")
}
