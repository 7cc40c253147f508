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

//go:build arm64

package simd

// The spec's SIMD kernel suite (shuffling, broadcast, BMISS, QFilter,
// vp2intersect emulation, conflict detection) is specified in terms of
// SSE/AVX2/AVX-512 lane widths only; there is no NEON/SVE variant to
// dispatch to. NEON happens to also give 4 int32 lanes, so arm64 runs the
// same portable Vec4 path as LevelSSE without claiming AVX2/AVX-512 width.
func init() {
	if noSimdEnv() {
		currentLevel = LevelScalar
		return
	}
	currentLevel = LevelSSE
}
