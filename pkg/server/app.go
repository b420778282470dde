package server

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"EquityPulse/internal/domain/repository"
	"EquityPulse/internal/handler/api"
	"EquityPulse/internal/usecase"
	"EquityPulse/pkg/config"
	xhttp "EquityPulse/pkg/http"
	applogger "EquityPulse/pkg/logger"
)

// App encapsulates the application lifecycle: one research run, then an
// optional read API serving the results until interrupted.
type App struct {
	cfg       *config.Config
	log       *applogger.Logger
	research  *usecase.Research
	handler   *api.ResearchEchoHandler
	store     repository.CorpusStore
	publisher repository.DecisionPublisher
}

// New creates the application with all dependencies injected.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	research *usecase.Research,
	handler *api.ResearchEchoHandler,
	store repository.CorpusStore,
	publisher repository.DecisionPublisher,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		research:  research,
		handler:   handler,
		store:     store,
		publisher: publisher,
	}
}

// Run executes the research pass and, when serve mode is on, keeps the read
// API up until a signal arrives.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer a.closeResources()

	out, err := a.research.Run(ctx, a.cfg.DaysBack)
	if err != nil {
		return fmt.Errorf("research run: %w", err)
	}
	a.handler.SetLast(out)

	if !a.cfg.Server.Enabled {
		// Batch mode: emit the run result on stdout and exit.
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	srv := xhttp.NewServer(a.handler, a.log,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithAllowOrigins(a.cfg.Server.AllowOrigins),
	)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	a.log.Info("shutdown signal received")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

func (a *App) closeResources() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("corpus store close", applogger.Error(err))
		}
	}
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Warn("publisher close", applogger.Error(err))
		}
	}
}
