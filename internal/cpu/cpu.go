// Package cpu provides host capability detection for PV kernel selection.
//
// Detection runs lazily on the first call to DetectFeatures and is cached.
// Tests can pin the reported features with SetForcedFeatures, and the
// KKCHECK_FORCE_GENERIC environment variable restricts selection to the
// scalar reference kernel.
package cpu

import (
	"os"
	"runtime"
	"strconv"
	"sync"

	xcpu "golang.org/x/sys/cpu"
)

// ForceGenericEnv is the environment variable that pins the reference kernel.
const ForceGenericEnv = "KKCHECK_FORCE_GENERIC"

// Level is the execution capability a kernel implementation requires.
type Level int

const (
	// LevelScalar is a single-goroutine scalar loop, available everywhere.
	LevelScalar Level = iota

	// LevelParallel fans independent rows out over several goroutines.
	LevelParallel
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Features describes host capabilities relevant to kernel selection.
type Features struct {
	// SIMD extensions. They are reported for diagnostics only and gate no
	// kernel: the PV rows are scalar, and vectorised block math is
	// dispatched inside algo-vecmath.
	HasSSE2 bool
	HasAVX2 bool
	HasNEON bool

	// NumCPU is the number of goroutines that can run simultaneously.
	NumCPU int

	// ForceGeneric disables every accelerated kernel.
	ForceGeneric bool

	Architecture string
}

var (
	detectedFeatures Features
	detectOnce       sync.Once
	detectMutex      sync.Mutex

	forcedFeatures *Features
	forcedMutex    sync.RWMutex
)

// DetectFeatures returns the capabilities of the current host.
//
// It is safe for concurrent use.
func DetectFeatures() Features {
	forcedMutex.RLock()
	forced := forcedFeatures
	forcedMutex.RUnlock()

	if forced != nil {
		return *forced
	}

	detectMutex.Lock()
	detectOnce.Do(func() {
		detectedFeatures = Features{
			HasSSE2:      xcpu.X86.HasSSE2,
			HasAVX2:      xcpu.X86.HasAVX2,
			HasNEON:      xcpu.ARM64.HasASIMD,
			NumCPU:       runtime.GOMAXPROCS(0),
			ForceGeneric: envBool(ForceGenericEnv),
			Architecture: runtime.GOARCH,
		}
	})
	features := detectedFeatures
	detectMutex.Unlock()

	return features
}

// SetForcedFeatures overrides detection. Intended for tests.
func SetForcedFeatures(f Features) {
	forcedMutex.Lock()
	defer forcedMutex.Unlock()
	forced := f
	forcedFeatures = &forced
}

// ResetDetection clears forced features and the detection cache.
func ResetDetection() {
	forcedMutex.Lock()
	forcedFeatures = nil
	forcedMutex.Unlock()

	detectMutex.Lock()
	detectOnce = sync.Once{}
	detectedFeatures = Features{}
	detectMutex.Unlock()
}

// Supports reports whether features allow an implementation at level.
func Supports(features Features, level Level) bool {
	if features.ForceGeneric {
		return level == LevelScalar
	}

	switch level {
	case LevelScalar:
		return true
	case LevelParallel:
		return features.NumCPU > 1
	default:
		return false
	}
}

func envBool(name string) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
