package scheduler

import (
	"context"
	"time"

	"github.com/georgemunganga/vendora-backend/internal/platform/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron specs. Overlapping runs of the same job are skipped.
type Scheduler struct {
	cron    *cron.Cron
	log     *zap.Logger
	timeout time.Duration
}

// New creates a scheduler whose job runs are bounded by timeout.
func New(log *zap.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		log:     log,
		timeout: timeout,
	}
}

// Add registers job under name. spec accepts the standard 5-field syntax and @every descriptors.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() { s.run(name, job) })
	return err
}

func (s *Scheduler) run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	err := job(ctx)
	metrics.JobRun(name, err == nil)
	if err != nil {
		s.log.Error("scheduled job failed", zap.String("job", name), zap.Error(err))
		return
	}
	s.log.Debug("scheduled job done", zap.String("job", name), zap.Duration("took", time.Since(start)))
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
