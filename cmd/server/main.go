package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shoyo10/usersvc/internal/config"
	"github.com/shoyo10/usersvc/internal/database"
	"github.com/shoyo10/usersvc/internal/http/handlers"
	"github.com/shoyo10/usersvc/internal/repository"
	"github.com/shoyo10/usersvc/internal/service"
	"github.com/shoyo10/wzerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("Fatal error config: %s", err))
	}

	wzerolog.Init(cfg.Log)

	ctx := log.Logger.WithContext(context.Background())

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Ctx(ctx).Fatal().Msgf("connect database failed: %+v", err)
	}

	repo := repository.New(db)
	svc := service.New(repo)
	router := handlers.NewRouter(svc)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSec) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Ctx(ctx).Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// A fatal server fault takes the same drain-and-release path as an
	// explicit termination signal, then exits non-zero.
	var fatalErr error
	select {
	case sig := <-quit:
		log.Ctx(ctx).Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case fatalErr = <-serverErr:
		log.Ctx(ctx).Error().Msgf("server failed: %+v", fatalErr)
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Ctx(ctx).Error().Msgf("server shutdown failed: %+v", err)
		fatalErr = err
	}

	if err := db.Close(); err != nil {
		log.Ctx(ctx).Error().Msgf("close database failed: %+v", err)
		fatalErr = err
	}

	if fatalErr != nil {
		os.Exit(1)
	}
	log.Ctx(ctx).Info().Msg("server exited")
}
