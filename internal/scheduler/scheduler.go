package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/sipcalc/sip-calculator/internal/calculation"
)

// Scheduler runs a ReportJob on a cron schedule. Specs use six fields,
// seconds first.
type Scheduler struct {
	Cron   *cron.Cron
	Job    *ReportJob
	Ctx    context.Context
	Logger calculation.Logger

	mu      sync.Mutex
	lastRun *ReportRun
	lastErr error
}

// NewScheduler creates a scheduler for job.
func NewScheduler(ctx context.Context, job *ReportJob) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Job:    job,
		Ctx:    ctx,
		Logger: calculation.NopLogger{},
	}
}

// SetLogger sets the logger. If nil is provided, a no-op logger is used.
func (s *Scheduler) SetLogger(l calculation.Logger) {
	s.Logger = calculation.OrNop(l)
}

// Register adds the report job under spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.runJob); err != nil {
		return fmt.Errorf("register report job %q: %w", spec, err)
	}
	s.Logger.Infof("report job registered: %s", spec)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Infof("scheduler started")
}

// Stop stops the cron scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Infof("scheduler stopped")
}

// RunNow executes the report job immediately.
func (s *Scheduler) RunNow() (*ReportRun, error) {
	s.runJob()
	return s.LastRun()
}

// LastRun returns the result of the most recent run.
func (s *Scheduler) LastRun() (*ReportRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastErr
}

func (s *Scheduler) runJob() {
	ctx := s.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	s.Logger.Infof("running report job")
	run, err := s.Job.Run(ctx)
	if err != nil {
		s.Logger.Errorf("report job: %v", err)
	}

	s.mu.Lock()
	s.lastRun, s.lastErr = run, err
	s.mu.Unlock()
}
