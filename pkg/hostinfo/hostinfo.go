// Package hostinfo summarizes the machine the supervisor runs on.
package hostinfo

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Info describes the host hardware and platform.
type Info struct {
	CPUModel      string `json:"cpu_model"`
	CPUThreads    int    `json:"cpu_threads"`
	RAMTotalBytes uint64 `json:"ram_total_bytes"`
	RAMFreeBytes  uint64 `json:"ram_free_bytes"`
	OS            string `json:"os"`
	Architecture  string `json:"architecture"`
}

// Detect gathers host information. Every probe is best effort; fields stay
// at their zero value (or "Unknown") when a probe fails.
func Detect() Info {
	info := Info{
		CPUModel:     "Unknown",
		CPUThreads:   runtime.NumCPU(),
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		info.CPUModel = infos[0].ModelName
	} else if runtime.GOOS == "linux" {
		info.CPUModel = detectLinuxCPU()
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAMTotalBytes = vm.Total
		info.RAMFreeBytes = vm.Available
	}

	return info
}

func detectLinuxCPU() string {
	file, err := os.Open("/proc/cpuinfo")
	if err != nil {
		return "Unknown"
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.Contains(line, "model name") {
			parts := strings.Split(line, ":")
			if len(parts) > 1 {
				return strings.TrimSpace(parts[1])
			}
		}
	}
	return "Unknown"
}

// FormatRAM renders a byte count as gigabytes for logs and CLI output.
func FormatRAM(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	return fmt.Sprintf("%.1f GB", gb)
}
