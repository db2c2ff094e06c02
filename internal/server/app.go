package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/philly/quillpost/internal/platform/eventbus"
	"github.com/philly/quillpost/internal/platform/events"
	"github.com/philly/quillpost/internal/platform/logger"
	"github.com/philly/quillpost/internal/platform/seeder"
)

const shutdownTimeout = 10 * time.Second

// App owns one HTTP server plus whatever must happen around it
type App struct {
	server      *http.Server
	logger      logger.Logger
	gopsEnabled bool
	seeder      *seeder.Orchestrator // nil unless demo data is wanted
	bus         *eventbus.Bus        // nil for the front end
}

// NewApp builds the API process. The audit log is taken only so wire
// subscribes it to the bus before the first request.
func NewApp(
	server *http.Server,
	config Config,
	orchestrator *seeder.Orchestrator,
	bus *eventbus.Bus,
	_ *events.AuditLog,
	log logger.Logger,
) *App {
	app := &App{
		server:      server,
		logger:      log,
		gopsEnabled: config.GopsEnabled,
		bus:         bus,
	}
	if config.SeedDemoData {
		app.seeder = orchestrator
	}
	return app
}

// NewWebApp builds the front-end process
func NewWebApp(server *http.Server, config WebConfig, log logger.Logger) *App {
	return &App{
		server:      server,
		logger:      log,
		gopsEnabled: config.GopsEnabled,
	}
}

// Run starts the application and handles graceful shutdown
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.gopsEnabled {
		if err := agent.Listen(agent.Options{}); err != nil {
			a.logger.Warn(ctx, "could not start gops agent", "error", err)
		} else {
			defer agent.Close()
		}
	}

	if a.seeder != nil {
		if err := a.seeder.RunAll(ctx); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(ctx, "starting server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		a.logger.Info(context.Background(), "shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	// Let in-flight event handlers finish before storage is closed by cleanup
	if a.bus != nil {
		a.bus.Wait()
	}

	a.logger.Info(context.Background(), "server stopped")
	return nil
}
