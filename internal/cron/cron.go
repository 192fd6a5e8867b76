package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kartik0209/music-backend/internal/service"
	"github.com/kartik0209/music-backend/pkg/logger"
)

// resyncSchedule runs the metadata resync nightly at 03:00.
const resyncSchedule = "0 3 * * *"

// Manager schedules the background maintenance jobs.
type Manager struct {
	cron        *cron.Cron
	maintenance *service.MaintenanceService
	log         logger.Logger
}

// NewManager creates a cron manager.
func NewManager(maintenance *service.MaintenanceService, log logger.Logger) *Manager {
	return &Manager{
		cron:        cron.New(cron.WithLocation(time.Local)),
		maintenance: maintenance,
		log:         log,
	}
}

// Start registers the jobs and starts the scheduler.
func (m *Manager) Start() error {
	_, err := m.cron.AddFunc(resyncSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		start := time.Now()
		m.log.Info("starting scheduled metadata resync")

		if err := m.maintenance.ResyncAllMetadata(ctx); err != nil {
			m.log.Error("metadata resync job failed", logger.Error(err))
			return
		}
		m.log.Info("metadata resync job completed",
			logger.Duration("took", time.Since(start)))
	})
	if err != nil {
		return err
	}

	m.cron.Start()
	m.log.Info("cron manager started", logger.String("resync_schedule", resyncSchedule))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (m *Manager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("cron manager stopped")
}

// RunResyncNow triggers the metadata resync immediately.
func (m *Manager) RunResyncNow(ctx context.Context) error {
	return m.maintenance.ResyncAllMetadata(ctx)
}
