package config

import (
	"os"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestResolvePoolSize(t *testing.T) {
	tests := []struct {
		raw      string
		expected int
		desc     string
	}{
		{"", 2, "empty value"},
		{"0", 2, "zero"},
		{"-3", 2, "negative"},
		{"abc", 2, "non-numeric"},
		{"2.5", 2, "float"},
		{"  ", 2, "whitespace only"},
		{"1", 1, "minimum valid"},
		{"5", 5, "typical value"},
		{"17", 17, "larger value"},
		{" 4 ", 4, "padded value"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := ResolvePoolSize(tt.raw); got != tt.expected {
				t.Errorf("ResolvePoolSize(%q) = %d, expected %d", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	v := viper.New()

	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.PoolSize != DefaultPoolSize {
		t.Errorf("PoolSize = %d, expected default %d", cfg.PoolSize, DefaultPoolSize)
	}
	if cfg.NativeLibraryPath != DefaultNativeLibraryPath {
		t.Errorf("NativeLibraryPath = %q, expected default %q", cfg.NativeLibraryPath, DefaultNativeLibraryPath)
	}
	if cfg.WorkerCommand != DefaultWorkerCommand {
		t.Errorf("WorkerCommand = %q, expected default %q", cfg.WorkerCommand, DefaultWorkerCommand)
	}
	if cfg.PrimaryCommand != DefaultPrimaryCommand {
		t.Errorf("PrimaryCommand = %q, expected default %q", cfg.PrimaryCommand, DefaultPrimaryCommand)
	}

	cwd, _ := os.Getwd()
	if cfg.ModuleSearchPath != cwd {
		t.Errorf("ModuleSearchPath = %q, expected working directory %q", cfg.ModuleSearchPath, cwd)
	}
}

func TestResolveWorkersFromViper(t *testing.T) {
	v := viper.New()
	v.Set("workers", "5")
	v.Set("worker_command", "/usr/local/bin/task")
	v.Set("primary_command", "/usr/local/bin/api")

	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.PoolSize != 5 {
		t.Errorf("PoolSize = %d, expected 5", cfg.PoolSize)
	}
	if cfg.WorkerCommand != "/usr/local/bin/task" {
		t.Errorf("WorkerCommand = %q", cfg.WorkerCommand)
	}
	if cfg.PrimaryCommand != "/usr/local/bin/api" {
		t.Errorf("PrimaryCommand = %q", cfg.PrimaryCommand)
	}
}

func TestChildEnvFrozen(t *testing.T) {
	v := viper.New()
	v.Set("native_library_path", "/opt/libs")

	cfg, err := Resolve(v)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	env := cfg.ChildEnv()
	if len(env) == 0 {
		t.Fatal("ChildEnv returned empty environment")
	}

	var haveLib, haveModule bool
	for _, kv := range env {
		if kv == "LD_LIBRARY_PATH=/opt/libs" {
			haveLib = true
		}
		if strings.HasPrefix(kv, "PYTHONPATH=") && strings.TrimPrefix(kv, "PYTHONPATH=") == cfg.ModuleSearchPath {
			haveModule = true
		}
	}
	if !haveLib {
		t.Error("LD_LIBRARY_PATH not injected into child environment")
	}
	if !haveModule {
		t.Error("PYTHONPATH not set to module search path in child environment")
	}

	// Two calls must observe the same snapshot.
	again := cfg.ChildEnv()
	if len(again) != len(env) {
		t.Errorf("ChildEnv changed between calls: %d vs %d entries", len(env), len(again))
	}
}
