package engine

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/kristall/core"
	"github.com/lixenwraith/kristall/parameter"
	"github.com/lixenwraith/kristall/status"
)

// SchedulerConfig controls tick cadence and fetch retry for every task
type SchedulerConfig struct {
	TickInterval time.Duration
	FetchBackoff time.Duration
}

// DefaultSchedulerConfig returns the compiled-in cadence
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		TickInterval: parameter.TickInterval,
		FetchBackoff: parameter.FetchBackoff,
	}
}

// Scheduler runs each task on its own goroutine
// Ticks are not synchronized across tasks; per-component locks are the only serialization
type Scheduler struct {
	source    EntityContainer
	cfg       SchedulerConfig
	clock     Clock
	statusReg *status.Registry

	mu    sync.Mutex
	tasks []Task

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewScheduler creates a scheduler over source
// A nil registry gets a private one
func NewScheduler(source EntityContainer, cfg SchedulerConfig, reg *status.Registry) *Scheduler {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Scheduler{
		source:    source,
		cfg:       cfg,
		clock:     NewTimeProvider(),
		statusReg: reg,
	}
}

// SetClock replaces the delta clock, must be called before Start
func (s *Scheduler) SetClock(c Clock) {
	s.clock = c
}

// Status returns the metrics registry tasks report into
func (s *Scheduler) Status() *status.Registry {
	return s.statusReg
}

// Add registers tasks, must be called before Start
func (s *Scheduler) Add(tasks ...Task) {
	s.mu.Lock()
	s.tasks = append(s.tasks, tasks...)
	s.mu.Unlock()
}

// Tasks returns the registered tasks
func (s *Scheduler) Tasks() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Running reports whether task goroutines are active
func (s *Scheduler) Running() bool {
	return s.running.Load()
}

// Start launches one goroutine per task
// Tasks run until ctx is cancelled or Stop is called
func (s *Scheduler) Start(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, t := range s.Tasks() {
		s.wg.Add(1)
		core.Go(func() {
			defer s.wg.Done()
			s.runTask(ctx, t)
		})
	}
}

// Stop cancels every task and waits for their goroutines to exit
// Stop on a scheduler that is not running is a no-op
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	s.cancel()
	s.wg.Wait()
}

// runTask is the per-task state machine: fetch with backoff, then tick forever
func (s *Scheduler) runTask(ctx context.Context, t Task) {
	name := t.Name()
	stats := s.statusReg.System(name)
	defer stats.State.Store("stopped")

	stats.State.Store("fetching")
	log.Printf("[%s] Initializing system...", name)
	for {
		err := t.Fetch(s.source)
		if err == nil {
			break
		}
		stats.FetchRetries.Add(1)
		log.Printf("[%s] %v; retrying in %v", name, err, s.cfg.FetchBackoff)
		if !sleepContext(ctx, s.cfg.FetchBackoff) {
			return
		}
	}
	log.Printf("[%s] Now online", name)
	stats.State.Store("running")

	prev := s.clock.Now()
	for {
		now := s.clock.Now()
		dt := now.Sub(prev)
		prev = now

		started := time.Now()
		err := t.Tick(dt)

		var freezeErr *FreezeError
		var panicErr *RunPanicError
		switch {
		case err == nil:
			stats.Ticks.Add(1)
			stats.LastDelta.Set(dt.Seconds())
			stats.TickMicros.Store(time.Since(started).Microseconds())
		case errors.As(err, &freezeErr):
			stats.Skipped.Add(1)
		case errors.As(err, &panicErr):
			stats.Panics.Add(1)
			log.Printf("[%s] %v", name, err)
		default:
			log.Printf("[%s] tick failed: %v", name, err)
		}

		if !sleepContext(ctx, s.cfg.TickInterval) {
			return
		}
	}
}

// sleepContext waits for d, returns false if ctx ends first
func sleepContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
