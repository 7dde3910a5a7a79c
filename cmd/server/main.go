package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mhrabal/tally/internal/config"
	"github.com/mhrabal/tally/internal/domain/checkin"
	"github.com/mhrabal/tally/internal/domain/cooldown"
	"github.com/mhrabal/tally/internal/domain/creds"
	"github.com/mhrabal/tally/internal/jsonfile"
	"github.com/mhrabal/tally/internal/metrics"
	"github.com/mhrabal/tally/internal/repository"
	"github.com/mhrabal/tally/internal/session"
	"github.com/mhrabal/tally/internal/sqlite"
	"github.com/mhrabal/tally/internal/transport"
)

func main() {
	// Optional .env for local runs; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	store, cleanup, err := openStore(cfg)
	if err != nil {
		logger.Error("failed to open ledger store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer cleanup()

	checkins := checkin.NewService(store, logger)
	if err := checkins.Init(context.Background(), time.Now()); err != nil {
		logger.Error("failed to initialize ledger", "error", err)
		os.Exit(1)
	}

	credentials, err := creds.Load(cfg.Creds.Path)
	if err != nil {
		logger.Error("failed to load credentials", "path", cfg.Creds.Path, "error", err)
		os.Exit(1)
	}

	sessions := session.NewStore()
	gate := cooldown.NewGate(sessions, time.Duration(cfg.Session.Cooldown))

	router := transport.NewServer(transport.Options{
		Checkins: checkins,
		Gate:     gate,
		Sessions: sessions,
		Creds:    credentials,
		Metrics:  metrics.New(),
		Logger:   logger,
		WebDir:   cfg.Web.Dir,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "store", cfg.Store.Backend)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// openStore builds the configured ledger backend.
func openStore(cfg config.Config) (repository.LedgerStore, func(), error) {
	switch cfg.Store.Backend {
	case "json":
		return jsonfile.NewStore(cfg.Store.Path), func() {}, nil
	case "sqlite":
		db, err := sqlite.New(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewLedgerStore(db), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
