package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sheikah-slate/relay-server/internal/config"
	"github.com/sheikah-slate/relay-server/internal/httpapi"
	"github.com/sheikah-slate/relay-server/internal/relay"
	"github.com/sheikah-slate/relay-server/internal/ws"
)

func main() {
	// Optional .env for local runs; the environment wins either way.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := ws.NewRegistry(logger)
	coord := relay.NewCoordinator(ctx, reg, cfg.HistoryLimit, logger)
	defer coord.Shutdown()

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: httpapi.SetupRoutes(coord, reg, cfg, logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
	logger.Info("shutdown complete")
}
