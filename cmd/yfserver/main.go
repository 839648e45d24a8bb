package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RxDataLab/go-yfinance"
	"github.com/RxDataLab/go-yfinance/internal/api"
	"github.com/RxDataLab/go-yfinance/internal/config"
	"github.com/RxDataLab/go-yfinance/internal/logger"
	"github.com/RxDataLab/go-yfinance/internal/store"
	"github.com/RxDataLab/go-yfinance/internal/store/sqlite"
)

func main() {
	cfg := config.Load()
	log := logger.New(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is done, then shuts down gracefully
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var st store.Store = &store.NopStore{}
	if cfg.DBPath != "" {
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open store %s: %w", cfg.DBPath, err)
		}
		st = db
		log.Info("recording runs", "path", cfg.DBPath)
	}
	defer st.Close()

	fetcher := yfinance.NewHTTPFetcher(cfg.HTTPTimeout)
	srv := api.NewServer(fetcher, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.HTTPTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		log.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown incomplete", "error", err)
		}
	}()

	log.Info("starting yfserver", "port", cfg.Port, "period", cfg.DefaultPeriod)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done
	return nil
}
