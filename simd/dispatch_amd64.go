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

//go:build amd64 && !goexperiment.simd

package simd

import "golang.org/x/sys/cpu"

// Without GOEXPERIMENT=simd there is no way to emit real vector instructions
// from Go source (no intrinsics, no asm here), so the Vec4/Vec8/Vec16
// kernels in this build run as plain Go loops rather than hardware SIMD.
// They remain correct either way; only CurrentLevel() changes, and with it
// which wide-lane entries intersect.Named/Names expose (see §4.6/§4.3 of
// SPEC_FULL.md: a kernel whose width exceeds CurrentLevel's is simply
// absent from the name table, matching real hardware-gated behavior).
func init() {
	if noSimdEnv() {
		currentLevel = LevelScalar
		return
	}
	detectLevel()
}

func detectLevel() {
	switch {
	case cpu.X86.HasAVX512F && cpu.X86.HasAVX512CD:
		currentLevel = LevelAVX512CD
	case cpu.X86.HasAVX512F:
		currentLevel = LevelAVX512
	case cpu.X86.HasAVX2:
		currentLevel = LevelAVX2
	case cpu.X86.HasSSSE3:
		currentLevel = LevelSSE
	default:
		currentLevel = LevelScalar
	}
}
