// Package supervisor keeps a fixed pool of worker processes and one primary
// process running forever. Any exit, clean or not, triggers an immediate
// relaunch; the only way a loop stops is cancellation of its context.
package supervisor

import (
	"context"
	"strconv"
	"sync"

	"github.com/psantana5/procwatch/pkg/config"
	"github.com/psantana5/procwatch/pkg/logging"
	"github.com/psantana5/procwatch/pkg/runner"
)

// Runner abstracts process execution so supervision loops can be exercised
// without spawning real children.
type Runner interface {
	Run(ctx context.Context, command string, args []string, env []string) runner.Status
}

// Observer receives loop lifecycle events. The metrics exporter plugs in
// here; the default is a no-op.
type Observer interface {
	ChildStarted(slot string)
	ChildExited(slot string, status runner.Status)
}

type nopObserver struct{}

func (nopObserver) ChildStarted(string)               {}
func (nopObserver) ChildExited(string, runner.Status) {}

// PrimarySlotName identifies the singleton primary loop in status output.
const PrimarySlotName = "primary"

// Supervisor owns the worker pool and the primary supervision loop.
type Supervisor struct {
	cfg     config.Config
	runner  Runner
	logger  *logging.Logger
	obs     Observer
	tracker *tracker
	wg      sync.WaitGroup
}

// New creates a Supervisor for the given configuration.
func New(cfg config.Config, r Runner, logger *logging.Logger) *Supervisor {
	return &Supervisor{
		cfg:     cfg,
		runner:  r,
		logger:  logger,
		obs:     nopObserver{},
		tracker: newTracker(),
	}
}

// WithObserver attaches an observer and returns the supervisor.
func (s *Supervisor) WithObserver(obs Observer) *Supervisor {
	s.obs = obs
	return s
}

// StartWorkers launches one independent supervision loop per slot index in
// [0, PoolSize). Each loop runs until ctx is cancelled.
func (s *Supervisor) StartWorkers(ctx context.Context) {
	for i := 0; i < s.cfg.PoolSize; i++ {
		idx := i
		name := strconv.Itoa(idx)
		s.tracker.register(name)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, name, s.cfg.WorkerCommand, []string{strconv.Itoa(idx)})
		}()
	}
}

// RunPrimary runs the primary supervision loop on the calling goroutine.
// It blocks until ctx is cancelled; the supervisor's apparent lifetime is
// the lifetime of this loop.
func (s *Supervisor) RunPrimary(ctx context.Context) {
	s.tracker.register(PrimarySlotName)
	s.loop(ctx, PrimarySlotName, s.cfg.PrimaryCommand, nil)
}

// Wait blocks until every worker loop has observed cancellation and its
// in-flight child has exited.
func (s *Supervisor) Wait() {
	s.wg.Wait()
}

// Snapshot returns the current view of every supervision loop.
func (s *Supervisor) Snapshot() []SlotStatus {
	return s.tracker.snapshot()
}

// loop is the per-slot state machine: Spawning -> Running -> Relaunching,
// forever. Exit status never influences the decision to relaunch; the
// shutdown check happens only between children.
func (s *Supervisor) loop(ctx context.Context, slot, command string, args []string) {
	log := s.logger.WithField("slot", slot)
	for {
		select {
		case <-ctx.Done():
			s.tracker.setState(slot, StateStopped)
			log.Debug("Supervision loop stopped")
			return
		default:
		}

		s.tracker.setState(slot, StateSpawning)
		// Observers count attempts: a spawn failure still fires
		// ChildStarted and is balanced by a spawn_error exit.
		s.obs.ChildStarted(slot)
		s.tracker.setState(slot, StateRunning)

		status := s.runner.Run(ctx, command, args, s.cfg.ChildEnv())

		s.tracker.recordExit(slot, status)
		s.obs.ChildExited(slot, status)
		log.Debug("Child exited, relaunching", map[string]interface{}{
			"code":   status.Code,
			"reason": string(status.Reason),
		})
	}
}
