package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/bureaunet/directory-backend/internal/database"
	"github.com/bureaunet/directory-backend/internal/metrics"
)

const healthCheckTimeout = 5 * time.Second

// CronService runs scheduled background jobs
type CronService struct {
	cron     *cron.Cron
	db       database.DB
	logger   *logrus.Logger
	schedule string
}

// NewCronService creates a new CronService. schedule accepts standard cron
// expressions and descriptors such as "@every 1m".
func NewCronService(db database.DB, logger *logrus.Logger, schedule string) *CronService {
	return &CronService{
		cron:     cron.New(),
		db:       db,
		logger:   logger,
		schedule: schedule,
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.healthCheckJob); err != nil {
		return fmt.Errorf("failed to schedule database health check: %w", err)
	}

	s.cron.Start()
	s.logger.WithField("schedule", s.schedule).Info("Cron service started")

	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Cron service stopped")
}

func (s *CronService) healthCheckJob() {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	if err := s.RunHealthCheckNow(ctx); err != nil {
		s.logger.WithError(err).Error("[CRON] Database health check failed")
	}
}

// RunHealthCheckNow pings the database and records pool statistics
func (s *CronService) RunHealthCheckNow(ctx context.Context) error {
	start := time.Now()
	err := s.db.PingContext(ctx)

	stats := s.db.Stats()
	metrics.DatabaseOpenConnections.Set(float64(stats.OpenConnections))

	if err != nil {
		metrics.DatabaseUp.Set(0)
		return fmt.Errorf("database ping failed: %w", err)
	}

	metrics.DatabaseUp.Set(1)
	s.logger.WithFields(logrus.Fields{
		"latency":          time.Since(start).String(),
		"open_connections": stats.OpenConnections,
		"in_use":           stats.InUse,
		"idle":             stats.Idle,
		"wait_count":       stats.WaitCount,
	}).Debug("[CRON] Database healthy")

	return nil
}

// JobCount returns the number of scheduled jobs
func (s *CronService) JobCount() int {
	return len(s.cron.Entries())
}
