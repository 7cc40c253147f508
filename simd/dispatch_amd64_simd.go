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

//go:build amd64 && goexperiment.simd

package simd

import "simd/archsimd"

// With GOEXPERIMENT=simd, Go's experimental simd/archsimd package gives us
// real CPUID-backed feature detection instead of golang.org/x/sys/cpu
// guesswork, the same way the teacher's dispatch_amd64_simd.go prefers
// archsimd.X86 over cpu.X86 whenever the experiment is enabled.
func init() {
	if noSimdEnv() {
		currentLevel = LevelScalar
		return
	}
	switch {
	case archsimd.X86.AVX512() && archsimd.X86.AVX512CD():
		currentLevel = LevelAVX512CD
	case archsimd.X86.AVX512():
		currentLevel = LevelAVX512
	case archsimd.X86.AVX2():
		currentLevel = LevelAVX2
	default:
		currentLevel = LevelSSE
	}
}
