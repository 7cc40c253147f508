// Copyright 2025 setops Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package simd

import (
	"os"
	"strconv"
)

// Level represents the SIMD instruction set this build/runtime is using
// for int32 set-intersection kernels.
type Level int

const (
	// LevelScalar means no SIMD: only the scalar kernels are dispatchable.
	LevelScalar Level = iota
	// LevelSSE means 4-wide (128-bit) int32 vectors are available.
	LevelSSE
	// LevelAVX2 means 8-wide (256-bit) int32 vectors are available.
	LevelAVX2
	// LevelAVX512 means 16-wide (512-bit) int32 vectors are available.
	LevelAVX512
	// LevelAVX512CD additionally has conflict-detection (vpconflictd).
	LevelAVX512CD
)

func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE:
		return "sse"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelAVX512CD:
		return "avx512cd"
	default:
		return "unknown"
	}
}

// currentLevel is set by init() in dispatch_*.go files, one of which is
// compiled depending on GOARCH and the goexperiment.simd build tag.
var currentLevel Level

// CurrentLevel returns the SIMD instruction set detected for this process.
func CurrentLevel() Level { return currentLevel }

// CurrentName is a convenience alias for CurrentLevel().String().
func CurrentName() string { return currentLevel.String() }

// HasSIMD reports whether any lane-parallel acceleration is available.
func HasSIMD() bool { return currentLevel != LevelScalar }

// Has4 reports whether 4-wide (SSE-class) kernels may be dispatched.
func Has4() bool { return currentLevel >= LevelSSE }

// Has8 reports whether 8-wide (AVX2-class) kernels may be dispatched.
func Has8() bool { return currentLevel >= LevelAVX2 }

// Has16 reports whether 16-wide (AVX-512-class) kernels may be dispatched.
func Has16() bool { return currentLevel >= LevelAVX512 }

// HasConflictDetection reports whether vpconflictd-style duplicate
// detection is available for the conflict_intersect kernel.
func HasConflictDetection() bool { return currentLevel >= LevelAVX512CD }

// noSimdEnv mirrors the teacher's HWY_NO_SIMD escape hatch: forces scalar
// fallback regardless of detected CPU features, for testing and debugging.
func noSimdEnv() bool {
	val := os.Getenv("SETOPS_NO_SIMD")
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}
