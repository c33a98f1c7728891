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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
	"github.com/DoyleJ11/ball-contest-support/internal/httpapi"
	"github.com/DoyleJ11/ball-contest-support/internal/hub"
	"github.com/DoyleJ11/ball-contest-support/internal/logging"
	"github.com/DoyleJ11/ball-contest-support/internal/profile"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig(".env")
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.DevLogging)
	if err != nil {
		return err
	}
	defer log.Sync()

	tuning, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	var store profile.Store = profile.NewMemoryStore()
	if cfg.DatabaseURL != "" {
		gs, err := profile.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		store = gs
		log.Info("profiles stored in postgres")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.NewHub(ctx, cfg.ControlCycle, log)

	// Build the router *with* the hub injected
	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.SetupRoutes(httpapi.Deps{
			Hub:      h,
			Profiles: store,
			Defaults: tuning,
			Logger:   log,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening",
			zap.String("addr", cfg.Addr),
			zap.Duration("control_cycle", cfg.ControlCycle),
			zap.String("detector", string(tuning.Engine.Strategy)),
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// matches stop with ctx and close their websocket streams
		<-h.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
