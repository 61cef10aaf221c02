package jobs

import (
	"context"
	"fmt"
	"time"

	"roomledger/internal/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

const LeaseScanJob = "lease-expiry-scan"

// LeaseRefresher recomputes and caches the expiring lease summary.
type LeaseRefresher interface {
	RefreshExpiringLeases(ctx context.Context) (*models.LeaseExpirySummary, error)
}

// Scheduler runs the periodic background jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	leases    LeaseRefresher
	logger    logrus.FieldLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewScheduler registers the lease scan to run every interval, starting as
// soon as the scheduler starts.
func NewScheduler(leases LeaseRefresher, interval time.Duration, logger logrus.FieldLogger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	js := &Scheduler{
		scheduler: scheduler,
		leases:    leases,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.scanLeases, ctx),
		gocron.WithName(LeaseScanJob),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		cancel()
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to create lease scan job: %w", err)
	}

	return js, nil
}

func (js *Scheduler) Start() {
	js.logger.WithField("jobs", js.JobNames()).Info("starting background job scheduler")
	js.scheduler.Start()
}

// Stop cancels running jobs and waits for them to return.
func (js *Scheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	js.cancel()
	return js.scheduler.Shutdown()
}

func (js *Scheduler) JobNames() []string {
	jobs := js.scheduler.Jobs()
	names := make([]string, 0, len(jobs))
	for _, j := range jobs {
		names = append(names, j.Name())
	}
	return names
}

func (js *Scheduler) scanLeases(ctx context.Context) error {
	started := time.Now()

	summary, err := js.leases.RefreshExpiringLeases(ctx)
	if err != nil {
		js.logger.WithError(err).Error("lease expiry scan failed")
		return err
	}

	entry := js.logger.WithFields(logrus.Fields{
		"window_days": summary.WindowDays,
		"expiring":    len(summary.Rooms),
		"duration":    time.Since(started).String(),
	})
	if len(summary.Rooms) > 0 {
		names := make([]string, 0, len(summary.Rooms))
		for _, r := range summary.Rooms {
			names = append(names, r.Name)
		}
		entry.WithField("rooms", names).Warn("leases expiring soon")
		return nil
	}
	entry.Info("lease expiry scan completed")
	return nil
}
