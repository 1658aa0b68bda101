package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultPoolSize is used whenever the WS value is absent or unusable.
	DefaultPoolSize = 2

	// DefaultNativeLibraryPath is the system default injected as
	// LD_LIBRARY_PATH when the environment does not provide one.
	DefaultNativeLibraryPath = "/usr/lib/x86_64-linux-gnu"

	DefaultWorkerCommand  = "./worker"
	DefaultPrimaryCommand = "./server"
)

// Config holds everything the supervisor needs, resolved once at startup.
// It is never mutated afterwards; every spawned child sees the same
// environment snapshot from ChildEnv.
type Config struct {
	PoolSize          int    `json:"pool_size" yaml:"pool_size"`
	NativeLibraryPath string `json:"native_library_path" yaml:"native_library_path"`
	ModuleSearchPath  string `json:"module_search_path" yaml:"module_search_path"`
	WorkerCommand     string `json:"worker_command" yaml:"worker_command"`
	PrimaryCommand    string `json:"primary_command" yaml:"primary_command"`
	StatusAddr        string `json:"status_addr,omitempty" yaml:"status_addr,omitempty"`

	childEnv []string
}

// Resolve builds the Config from viper (env, flags, optional config file).
// The only failure mode is not being able to determine the working
// directory; a bad WS value is silently replaced by the default rather
// than rejected.
func Resolve(v *viper.Viper) (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	libPath := v.GetString("native_library_path")
	if libPath == "" {
		libPath = DefaultNativeLibraryPath
	}

	cfg := Config{
		PoolSize:          ResolvePoolSize(v.GetString("workers")),
		NativeLibraryPath: libPath,
		ModuleSearchPath:  cwd,
		WorkerCommand:     v.GetString("worker_command"),
		PrimaryCommand:    v.GetString("primary_command"),
		StatusAddr:        v.GetString("status_addr"),
	}
	if cfg.WorkerCommand == "" {
		cfg.WorkerCommand = DefaultWorkerCommand
	}
	if cfg.PrimaryCommand == "" {
		cfg.PrimaryCommand = DefaultPrimaryCommand
	}

	// Freeze the child environment now. Later changes to the process
	// environment must not leak into spawned children.
	cfg.childEnv = append(os.Environ(),
		"LD_LIBRARY_PATH="+cfg.NativeLibraryPath,
		"PYTHONPATH="+cfg.ModuleSearchPath,
	)

	return cfg, nil
}

// ResolvePoolSize parses the raw WS value. Absent, empty, non-numeric, or
// less than 1 all fall back to DefaultPoolSize; there is no error path.
func ResolvePoolSize(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return DefaultPoolSize
	}
	return n
}

// ChildEnv returns the environment snapshot shared by every child the
// supervisor spawns.
func (c Config) ChildEnv() []string {
	return c.childEnv
}
