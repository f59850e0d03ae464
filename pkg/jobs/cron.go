package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/leadmanager/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Seeder regenerates the sample lead data
type Seeder interface {
	Seed(ctx context.Context, count int) (int, error)
}

// CronManager manages scheduled jobs
type CronManager struct {
	cron   *cron.Cron
	seeder Seeder
	count  int
	logger logger.Logger
}

// NewCronManager creates a new cron manager
func NewCronManager(seeder Seeder, count int, log logger.Logger) *CronManager {
	if log == nil {
		log = logger.Default()
	}

	return &CronManager{
		cron:   cron.New(),
		seeder: seeder,
		count:  count,
		logger: log,
	}
}

// SetupJobs schedules the periodic reseed. An empty schedule schedules nothing.
func (cm *CronManager) SetupJobs(schedule string) error {
	if schedule == "" {
		cm.logger.Info("Reseed job disabled")
		return nil
	}

	if _, err := cm.cron.AddFunc(schedule, cm.RunReseed); err != nil {
		return fmt.Errorf("invalid reseed schedule %q: %w", schedule, err)
	}

	cm.logger.Info("Cron jobs configured", "reseed_schedule", schedule, "count", cm.count)
	return nil
}

// RunReseed regenerates the sample leads once
func (cm *CronManager) RunReseed() {
	cm.logger.Info("Running reseed job")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := cm.seeder.Seed(ctx, cm.count)
	if err != nil {
		cm.logger.Error("Reseed job failed", "error", err)
		return
	}

	cm.logger.Info("Reseed job completed", "leads", n)
}

// Jobs returns the number of scheduled jobs
func (cm *CronManager) Jobs() int {
	return len(cm.cron.Entries())
}

// Start starts the cron scheduler
func (cm *CronManager) Start() {
	cm.logger.Info("Starting cron scheduler")
	cm.cron.Start()
}

// Stop stops the cron scheduler and waits for a running job to finish
func (cm *CronManager) Stop() {
	cm.logger.Info("Stopping cron scheduler")
	<-cm.cron.Stop().Done()
}
