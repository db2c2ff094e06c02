package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/philly/quillpost/internal/platform/logger"
)

// Seeder fills a store with starter data. Seed must be safe to run on
// every boot, so implementations check for existing data first.
type Seeder interface {
	Name() string
	Seed(ctx context.Context) error
}

// Orchestrator runs seeders in registration order
type Orchestrator struct {
	seeders []Seeder
	logger  logger.Logger
}

func NewOrchestrator(logger logger.Logger, seeders []Seeder) *Orchestrator {
	return &Orchestrator{
		seeders: seeders,
		logger:  logger,
	}
}

// RunAll stops at the first failing seeder. Seeders after it are not run.
func (o *Orchestrator) RunAll(ctx context.Context) error {
	started := time.Now()
	o.logger.Info(ctx, "seeding demo data", "seeders", len(o.seeders))

	for i, s := range o.seeders {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("seeding interrupted before %s: %w", s.Name(), err)
		}

		t := time.Now()
		if err := s.Seed(ctx); err != nil {
			o.logger.Error(ctx, "seeder failed", "seeder", s.Name(), "position", i+1, "error", err)
			return fmt.Errorf("seeder %s failed: %w", s.Name(), err)
		}
		o.logger.Debug(ctx, "seeder done", "seeder", s.Name(), "duration", time.Since(t))
	}

	o.logger.Info(ctx, "seeding finished", "duration", time.Since(started))
	return nil
}
