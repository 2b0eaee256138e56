package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rfpflow/internal/app"
	"rfpflow/internal/config"
	"rfpflow/internal/handler"
	"rfpflow/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Auth.AdminPasswordHash == "" {
		log.Printf("server: RFPFLOW_AUTH_ADMIN_PASSWORD_HASH not set, admin routes are unreachable")
	}

	// Initialize handlers
	handlers := router.Handlers{
		Auth:    handler.NewAuthHandler(a.Auth),
		RFP:     handler.NewRFPHandler(a.Pipeline),
		Run:     handler.NewRunHandler(a.Runs),
		Product: handler.NewProductHandler(a.Catalog),
		Stats:   handler.NewStatsHandler(a.Stats),
		Health:  handler.NewHealthHandler(map[string]handler.ReadinessCheck{"database": a.Ping}),
	}

	// Setup router
	r := router.Setup(a.Auth, handlers, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("server: shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 15*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
