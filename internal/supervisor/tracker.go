package supervisor

import (
	"sort"
	"sync"
	"time"

	"github.com/psantana5/procwatch/pkg/runner"
)

// State names one phase of a supervision loop.
type State string

const (
	StateSpawning    State = "spawning"
	StateRunning     State = "running"
	StateRelaunching State = "relaunching"
	StateStopped     State = "stopped"
)

// SlotStatus is the externally visible view of one supervision loop.
type SlotStatus struct {
	Slot           string            `json:"slot"`
	State          State             `json:"state"`
	PID            int               `json:"pid,omitempty"`
	Restarts       uint64            `json:"restarts"`
	LastExitCode   int               `json:"last_exit_code"`
	LastExitReason runner.ExitReason `json:"last_exit_reason,omitempty"`
	LastExitAt     time.Time         `json:"last_exit_at,omitempty"`
}

// tracker records per-slot status for the HTTP API. Each loop writes only
// its own slot; the lock exists for concurrent readers.
type tracker struct {
	mu    sync.RWMutex
	slots map[string]*SlotStatus
}

func newTracker() *tracker {
	return &tracker{slots: make(map[string]*SlotStatus)}
}

func (t *tracker) register(slot string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slots[slot] = &SlotStatus{Slot: slot, State: StateSpawning}
}

func (t *tracker) setState(slot string, state State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if st, ok := t.slots[slot]; ok {
		st.State = state
	}
}

func (t *tracker) recordExit(slot string, status runner.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.slots[slot]
	if !ok {
		return
	}
	st.State = StateRelaunching
	st.PID = status.PID
	st.Restarts++
	st.LastExitCode = status.Code
	st.LastExitReason = status.Reason
	st.LastExitAt = time.Now()
}

func (t *tracker) snapshot() []SlotStatus {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]SlotStatus, 0, len(t.slots))
	for _, st := range t.slots {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out
}
