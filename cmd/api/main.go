// @title pet-profiles API
// @version 1.0
// @description Perfiles públicos de mascotas: login, gestor de perfiles, uploads y visor público.
// @BasePath /
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

	"pet-profiles/internal/platform/config"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/router"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pet-profiles: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := router.OpenBackends(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = backends.Close() }()

	seeds, err := cfg.Seeds()
	if err != nil {
		return err
	}
	if err := backends.Seed(ctx, seeds, log); err != nil {
		return err
	}

	svc, err := router.NewServices(backends, router.ServiceConfig{
		AppName:        cfg.AppName,
		JWTSecret:      cfg.JWTSecret,
		SessionTTL:     cfg.SessionTTL,
		MaxUploadBytes: cfg.MaxUploadBytes(),
		OrphanTTL:      cfg.OrphanTTL,
	}, log)
	if err != nil {
		return err
	}

	h, err := router.NewRouter(router.Options{
		Services:       svc,
		Log:            log,
		AppName:        cfg.AppName,
		CookieSecure:   cfg.CookieSecure,
		ObjectsHandler: backends.ObjectsHandler,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "backend": backends.Kind})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return svc.Reconciler.Run(gctx, cfg.ReconcileInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shCtx)
	})

	return g.Wait()
}
