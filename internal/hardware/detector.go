package hardware

import (
	"context"
	"log"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"tierparse/internal/domain"
)

// nvidiaSMIArgs queries total memory and device name in parseable CSV.
var nvidiaSMIArgs = []string{
	"--query-gpu=memory.total,name",
	"--format=csv,noheader,nounits",
}

// Detect probes hardware capability and returns an immutable profile.
// It is invoked exactly once at process startup. Probe failure of any
// kind (driver absent, timeout, garbage output) degrades to a
// no-accelerator profile; startup never fails on detection.
func Detect(ctx context.Context) domain.HardwareProfile {
	profile := domain.HardwareProfile{Cores: runtime.NumCPU()}

	out, err := exec.CommandContext(ctx, "nvidia-smi", nvidiaSMIArgs...).Output()
	if err != nil {
		log.Printf("hardware.Detect: accelerator probe failed (%v), assuming CPU-only", err)
		return profile
	}

	memMB, name, ok := parseNvidiaSMI(string(out))
	if !ok {
		log.Printf("hardware.Detect: unparsable probe output %q, assuming CPU-only", strings.TrimSpace(string(out)))
		return profile
	}

	profile.AcceleratorPresent = true
	profile.AcceleratorMemoryMB = memMB
	profile.AcceleratorName = name
	log.Printf("hardware.Detect: accelerator %q with %d MB detected (%d cores)",
		name, memMB, profile.Cores)
	return profile
}

// parseNvidiaSMI extracts memory (MB) and device name from the first
// line of `nvidia-smi --query-gpu=memory.total,name` CSV output.
func parseNvidiaSMI(out string) (memMB int64, name string, ok bool) {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	memStr, name, found := strings.Cut(line, ",")
	if !found {
		return 0, "", false
	}
	memMB, err := strconv.ParseInt(strings.TrimSpace(memStr), 10, 64)
	if err != nil || memMB <= 0 {
		return 0, "", false
	}
	return memMB, strings.TrimSpace(name), true
}
