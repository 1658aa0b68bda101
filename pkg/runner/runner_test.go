package runner

import (
	"bytes"
	"context"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestRunExitStatuses(t *testing.T) {
	tests := []struct {
		script string
		code   int
		reason ExitReason
		desc   string
	}{
		{"exit 0", 0, ExitReasonSuccess, "clean exit"},
		{"exit 3", 3, ExitReasonError, "non-zero exit"},
		{"exit 42", 42, ExitReasonError, "arbitrary failure code"},
	}

	r := New()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			status := r.Run(context.Background(), "/bin/sh", []string{"-c", tt.script}, nil)
			if status.Code != tt.code {
				t.Errorf("Code = %d, expected %d", status.Code, tt.code)
			}
			if status.Reason != tt.reason {
				t.Errorf("Reason = %s, expected %s", status.Reason, tt.reason)
			}
			if status.PID <= 0 {
				t.Errorf("PID = %d, expected the child's PID", status.PID)
			}
		})
	}
}

func TestRunSpawnFailure(t *testing.T) {
	r := New()
	status := r.Run(context.Background(), "/nonexistent/binary", nil, nil)

	if status.Reason != ExitReasonSpawn {
		t.Errorf("Reason = %s, expected %s", status.Reason, ExitReasonSpawn)
	}
	if status.Code != 127 {
		t.Errorf("Code = %d, expected 127", status.Code)
	}
	if status.PID != 0 {
		t.Errorf("PID = %d, expected 0 when no process was created", status.PID)
	}
}

func TestRunPassesEnvironment(t *testing.T) {
	var out bytes.Buffer
	r := New()
	r.Stdout = &out

	env := []string{"PATH=/usr/bin:/bin", "PROCWATCH_PROBE=frozen-value"}
	status := r.Run(context.Background(), "/bin/sh", []string{"-c", "echo $PROCWATCH_PROBE"}, env)

	if !status.OK() {
		t.Fatalf("child failed: %+v", status)
	}
	if got := strings.TrimSpace(out.String()); got != "frozen-value" {
		t.Errorf("child saw %q, expected %q", got, "frozen-value")
	}
}

func TestRunPassesArguments(t *testing.T) {
	var out bytes.Buffer
	r := New()
	r.Stdout = &out

	status := r.Run(context.Background(), "/bin/sh", []string{"-c", `echo "$0"`, "7"}, nil)
	if !status.OK() {
		t.Fatalf("child failed: %+v", status)
	}
	if got := strings.TrimSpace(out.String()); got != "7" {
		t.Errorf("child saw slot argument %q, expected %q", got, "7")
	}
}

func TestRunCancelSendsTERMAndWaits(t *testing.T) {
	r := New()
	ctx, cancel := context.WithCancel(context.Background())

	start := time.Now()
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	// Child blocks until signaled; trap makes it exit on TERM.
	status := r.Run(ctx, "/bin/sh", []string{"-c", "trap 'exit 0' TERM; sleep 30 & wait"}, nil)
	elapsed := time.Since(start)

	if elapsed > 10*time.Second {
		t.Fatalf("Run did not release after cancellation, took %v", elapsed)
	}
	if status.Reason == ExitReasonSpawn || status.Reason == ExitReasonUnknown {
		t.Errorf("unexpected reason %s after cancellation", status.Reason)
	}
}

func TestStatusFromWaitSignal(t *testing.T) {
	r := New()

	// Child kills itself; wait status must report the signal.
	status := r.Run(context.Background(), "/bin/sh", []string{"-c", "kill -KILL $$"}, nil)

	if status.Reason != ExitReasonSignal {
		t.Fatalf("Reason = %s, expected %s", status.Reason, ExitReasonSignal)
	}
	if status.Signal != "SIGKILL" {
		t.Errorf("Signal = %q, expected SIGKILL", status.Signal)
	}
	if status.Code != 128+int(syscall.SIGKILL) {
		t.Errorf("Code = %d, expected %d", status.Code, 128+int(syscall.SIGKILL))
	}
}

func TestSignalName(t *testing.T) {
	tests := []struct {
		sig      syscall.Signal
		expected string
	}{
		{syscall.SIGTERM, "SIGTERM"},
		{syscall.SIGKILL, "SIGKILL"},
		{syscall.SIGINT, "SIGINT"},
		{syscall.SIGSEGV, "SIGSEGV"},
	}

	for _, tt := range tests {
		if got := SignalName(tt.sig); got != tt.expected {
			t.Errorf("SignalName(%d) = %q, expected %q", tt.sig, got, tt.expected)
		}
	}
}
