package hostinfo

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	info := Detect()

	if info.CPUThreads < 1 {
		t.Errorf("CPUThreads = %d, expected at least 1", info.CPUThreads)
	}
	if info.OS != runtime.GOOS {
		t.Errorf("OS = %q, expected %q", info.OS, runtime.GOOS)
	}
	if info.Architecture != runtime.GOARCH {
		t.Errorf("Architecture = %q, expected %q", info.Architecture, runtime.GOARCH)
	}
	if info.CPUModel == "" {
		t.Error("CPUModel is empty, expected a model name or Unknown")
	}
}

func TestFormatRAM(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0.0 GB"},
		{1 << 30, "1.0 GB"},
		{16 << 30, "16.0 GB"},
		{1536 << 20, "1.5 GB"},
	}

	for _, tt := range tests {
		if got := FormatRAM(tt.bytes); got != tt.expected {
			t.Errorf("FormatRAM(%d) = %q, expected %q", tt.bytes, got, tt.expected)
		}
	}
}
