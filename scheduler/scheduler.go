package scheduler

import (
	"context"
	"log"
	"sync"

	"econoshorts/config"
	"econoshorts/pipeline"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the autopilot pipeline on a cron cadence. At most one job
// runs at a time; a tick that fires while a job is still running is skipped.
type Scheduler struct {
	cfg    config.SchedulerConfig
	runner *pipeline.Runner
	cron   *cron.Cron
	mu     sync.Mutex
}

func New(cfg config.SchedulerConfig, runner *pipeline.Runner) *Scheduler {
	return &Scheduler{cfg: cfg, runner: runner, cron: cron.New()}
}

// Start registers the cron entry and begins ticking. It returns immediately;
// jobs run on the cron goroutine.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.cfg.Cron, func() { s.tick(ctx) })
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("[scheduler] started with cadence %q", s.cfg.Cron)
	return nil
}

// Stop halts ticking and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.mu.Lock() // barrier for an in-flight tick
	s.mu.Unlock()
	log.Println("[scheduler] stopped")
}

func (s *Scheduler) tick(ctx context.Context) {
	if !s.mu.TryLock() {
		log.Println("[scheduler] previous job still running, skipping tick")
		return
	}
	defer s.mu.Unlock()

	policy := pipeline.PolicyFromConfig(s.cfg.Retry)
	err := policy.Do(ctx, "autopilot", func(ctx context.Context) error {
		res := s.runner.RunAuto(ctx, s.cfg.TargetDuration)
		if !res.Success {
			if res.Error == "" {
				// skipped runs (e.g. duplicate topic) are not failures
				return nil
			}
			return &jobError{res.Error}
		}
		log.Printf("[scheduler] ✅ produced %s", res.OutputPath)
		return nil
	})
	if err != nil {
		log.Printf("[scheduler] ❌ autopilot run failed: %v", err)
	}
}

type jobError struct{ msg string }

func (e *jobError) Error() string { return e.msg }
