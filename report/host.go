package report

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/cpuid/v2"
)

// HostInfo describes the machine a benchmark ran on.
type HostInfo struct {
	CPU           string   `yaml:"cpu"`
	PhysicalCores int      `yaml:"physical_cores"`
	LogicalCores  int      `yaml:"logical_cores"`
	L2Cache       string   `yaml:"l2_cache,omitempty"`
	Features      []string `yaml:"features,omitempty"`
	GOOS          string   `yaml:"goos"`
	GOARCH        string   `yaml:"goarch"`
	GOMAXPROCS    int      `yaml:"gomaxprocs"`
}

// Host inspects the current CPU.
func Host() HostInfo {
	h := HostInfo{
		CPU:           strings.TrimSpace(cpuid.CPU.BrandName),
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		GOOS:          runtime.GOOS,
		GOARCH:        runtime.GOARCH,
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
	}
	if h.CPU == "" {
		h.CPU = "unknown"
	}
	if l2 := cpuid.CPU.Cache.L2; l2 > 0 {
		h.L2Cache = humanize.IBytes(uint64(l2))
	}
	for _, f := range []struct {
		id   cpuid.FeatureID
		name string
	}{
		{cpuid.SSE2, "sse2"},
		{cpuid.AVX, "avx"},
		{cpuid.AVX2, "avx2"},
		{cpuid.FMA3, "fma3"},
		{cpuid.AVX512F, "avx512f"},
		{cpuid.ASIMD, "asimd"},
	} {
		if cpuid.CPU.Supports(f.id) {
			h.Features = append(h.Features, f.name)
		}
	}

	return h
}

// String renders h on one line, e.g. "Intel Xeon (8C/16T, avx2 fma3) linux/amd64".
func (h HostInfo) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%dC/%dT", h.CPU, h.PhysicalCores, h.LogicalCores)
	if len(h.Features) > 0 {
		b.WriteString(", ")
		b.WriteString(strings.Join(h.Features, " "))
	}
	fmt.Fprintf(&b, ") %s/%s", h.GOOS, h.GOARCH)

	return b.String()
}
