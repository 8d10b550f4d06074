package compute

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// cpuFeatures tracks the instruction set extensions the host exposes.
type cpuFeatures struct {
	HasSSE4    bool
	HasAVX     bool
	HasAVX2    bool
	HasAVX512F bool
	HasFMA     bool
	HasNEON    bool
}

var hostFeatures cpuFeatures

func init() {
	hostFeatures = detectFeatures()
}

func detectFeatures() cpuFeatures {
	return cpuFeatures{
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasFMA:     cpu.X86.HasFMA,
		HasNEON:    cpu.ARM64.HasASIMD,
	}
}

// simdSummary returns a short description of the vector units available to
// the dense kernels, e.g. "AVX2+FMA" or "NEON".
func simdSummary() string {
	var feats []string
	if hostFeatures.HasAVX512F {
		feats = append(feats, "AVX512F")
	}
	if hostFeatures.HasAVX2 {
		feats = append(feats, "AVX2")
	} else if hostFeatures.HasAVX {
		feats = append(feats, "AVX")
	} else if hostFeatures.HasSSE4 {
		feats = append(feats, "SSE4")
	}
	if hostFeatures.HasFMA {
		feats = append(feats, "FMA")
	}
	if hostFeatures.HasNEON {
		feats = append(feats, "NEON")
	}
	if len(feats) == 0 {
		return "scalar"
	}
	return strings.Join(feats, "+")
}

// Probe describes the host without constructing a backend. The probe command
// and startup logging use it.
func Probe() DeviceInfo {
	return DeviceInfo{
		Name:    "cpu (" + runtime.GOARCH + ")",
		Arch:    runtime.GOARCH,
		Workers: runtime.NumCPU(),
		SIMD:    simdSummary(),
	}
}
