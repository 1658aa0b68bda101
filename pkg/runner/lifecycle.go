package runner

import "syscall"

// ExitReason describes why a child terminated
type ExitReason string

const (
	ExitReasonSuccess ExitReason = "success"     // Exit code 0
	ExitReasonError   ExitReason = "error"       // Exit code != 0
	ExitReasonSignal  ExitReason = "signal"      // Killed by signal
	ExitReasonSpawn   ExitReason = "spawn_error" // Process never started
	ExitReasonUnknown ExitReason = "unknown"
)

// Status is the terminal state of one child process. The supervisor treats
// every reason the same way (relaunch); the distinction exists for logging
// and metrics only.
type Status struct {
	PID    int        `json:"pid,omitempty"`
	Code   int        `json:"code"`
	Signal string     `json:"signal,omitempty"`
	Reason ExitReason `json:"reason"`
}

// OK reports whether the child exited cleanly.
func (s Status) OK() bool {
	return s.Reason == ExitReasonSuccess
}

// statusFromWait classifies a wait status into a Status.
func statusFromWait(ws syscall.WaitStatus) Status {
	if ws.Exited() {
		code := ws.ExitStatus()
		if code == 0 {
			return Status{Code: 0, Reason: ExitReasonSuccess}
		}
		return Status{Code: code, Reason: ExitReasonError}
	}

	if ws.Signaled() {
		sig := ws.Signal()
		return Status{
			Code:   128 + int(sig),
			Signal: SignalName(sig),
			Reason: ExitReasonSignal,
		}
	}

	return Status{Code: -1, Reason: ExitReasonUnknown}
}

// SignalName returns the signal name for a signal number
func SignalName(sig syscall.Signal) string {
	switch sig {
	case syscall.SIGKILL:
		return "SIGKILL"
	case syscall.SIGTERM:
		return "SIGTERM"
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGHUP:
		return "SIGHUP"
	case syscall.SIGQUIT:
		return "SIGQUIT"
	case syscall.SIGABRT:
		return "SIGABRT"
	case syscall.SIGSEGV:
		return "SIGSEGV"
	case syscall.SIGPIPE:
		return "SIGPIPE"
	default:
		return sig.String()
	}
}
