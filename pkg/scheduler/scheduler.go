package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/shoesim/internal/logging"
)

// Task represents a scheduled task
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(context.Context) error
}

// Scheduler runs tasks on fixed intervals. A failing task is logged and runs
// again on its next tick.
type Scheduler struct {
	clock   quartz.Clock
	logger  *logging.Logger
	tasks   []*Task
	running bool
	mutex   sync.Mutex
	cancel  context.CancelFunc
	waiters []quartz.Waiter
}

// NewScheduler creates a new scheduler. A nil clock uses the real clock.
func NewScheduler(clock quartz.Clock, logger *logging.Logger) *Scheduler {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if logger == nil {
		logger = logging.Default
	}
	return &Scheduler{
		clock:  clock,
		logger: logger,
		tasks:  make([]*Task, 0),
	}
}

// AddTask adds a task to the scheduler
func (s *Scheduler) AddTask(name string, interval time.Duration, fn func(context.Context) error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.tasks = append(s.tasks, &Task{
		Name:     name,
		Interval: interval,
		Fn:       fn,
	})
}

// Start runs every task once, then on its interval until Stop or ctx ends
func (s *Scheduler) Start(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	for _, task := range s.tasks {
		s.logger.Debug("Running task %s immediately on startup", task.Name)
		s.runTask(ctx, task)
		s.waiters = append(s.waiters, s.clock.TickerFunc(ctx, task.Interval, func() error {
			s.runTask(ctx, task)
			return nil
		}, task.Name))
	}

	s.logger.Info("Scheduler started with %d tasks", len(s.tasks))
}

// Stop cancels every task and waits for running ones to return
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	for _, w := range s.waiters {
		_ = w.Wait()
	}
	s.waiters = nil
	s.running = false
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runTask(ctx context.Context, task *Task) {
	if err := task.Fn(ctx); err != nil {
		s.logger.Error("Error running task %s: %v", task.Name, err)
	}
}
