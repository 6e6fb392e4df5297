package regeneration

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"rentalspot/pkg/config"
	"rentalspot/pkg/logger"
)

// Job is a scheduled unit of work. Its context is cancelled when the
// scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs jobs on cron specs. A run is skipped while the previous run
// of the same job is still going.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    *logger.Logger
}

func NewScheduler(log *logger.Logger) *Scheduler {
	cronLog := cronLogger{log: log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(config.CronParser),
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

// Add registers job under name. Failures are logged; the next tick runs it
// again.
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.log.Error("Scheduled job failed", "job", name, "duration", time.Since(start), "error", err)
			return
		}
		s.log.Debug("Scheduled job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%s): %w", name, spec, err)
	}
	s.log.Info("Job scheduled", "job", name, "spec", spec)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Info("Scheduler stopped")
}

// cronLogger adapts the service logger to cron's logger interface.
type cronLogger struct {
	log *logger.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
