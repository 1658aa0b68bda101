// Package runner spawns child processes and reports how they died.
package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// Runner executes one child process per Run call. Child stdout/stderr pass
// through to the supervisor's own streams so workload logging is untouched.
type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New creates a Runner wired to the process's standard streams.
func New() *Runner {
	return &Runner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run spawns command with the given args and environment and blocks until
// the child exits. It never returns a Go error: spawn failure, non-zero
// exit, and signal death are all reported through the Status. Retry policy
// belongs entirely to the caller.
//
// When ctx is cancelled while the child is alive, the child is sent SIGTERM
// and Run still waits for it to exit before returning.
func (r *Runner) Run(ctx context.Context, command string, args []string, env []string) Status {
	cmd := exec.Command(command, args...)
	cmd.Env = env
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Start(); err != nil {
		// Shell convention: 127 for a command that could not be run.
		// PID stays 0: no process ever existed.
		return Status{Code: 127, Reason: ExitReasonSpawn}
	}
	pid := cmd.Process.Pid

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case <-ctx.Done():
		cmd.Process.Signal(syscall.SIGTERM)
		<-done
	case <-done:
	}

	status := Status{Code: -1, Reason: ExitReasonUnknown}
	state := cmd.ProcessState
	if state != nil {
		if ws, ok := state.Sys().(syscall.WaitStatus); ok {
			status = statusFromWait(ws)
		} else if state.Success() {
			status = Status{Code: 0, Reason: ExitReasonSuccess}
		} else {
			status = Status{Code: state.ExitCode(), Reason: ExitReasonError}
		}
	}
	status.PID = pid
	return status
}
