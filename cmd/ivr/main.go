package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bitbucket.org/sotavant/clinic-ivr/internal/dialogue"
	"bitbucket.org/sotavant/clinic-ivr/internal/logger"
	"bitbucket.org/sotavant/clinic-ivr/internal/registry"
)

func main() {
	parseFlags()
	if err := run(); err != nil {
		panic(err)
	}
}

func run() error {
	if err := logger.Initialize(flagLogLevel); err != nil {
		return err
	}

	flow := dialogue.Flow(flagFlow)
	if flow != dialogue.FlowIntake && flow != dialogue.FlowVoicemail {
		return fmt.Errorf("unknown dialogue flow %q", flagFlow)
	}

	var validator registry.Validator = registry.Static{}
	if flagRegistryAddr != "" {
		validator = registry.NewClient(flagRegistryAddr)
	}

	appInstance := newApp(validator, dialogue.Config{
		Voice:     flagVoice,
		Flow:      flow,
		PublicURL: flagPublicURL,
	})

	srv := &http.Server{
		Addr:         flagRunAddr,
		Handler:      appInstance.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Log.Info("shutting down server")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Log.Error("server shutdown error", zap.Error(err))
		}
	}()

	logger.Log.Info("Running server",
		zap.String("address", flagRunAddr),
		zap.String("flow", string(flow)),
	)

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}

	logger.Log.Info("server stopped")
	return nil
}
