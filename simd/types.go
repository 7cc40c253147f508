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

// Package simd provides a portable SIMD vector abstraction over lanes of
// int32, plus runtime CPU-feature dispatch.
//
// It follows the same design as a Highway-style portable SIMD layer: write
// the kernel once against logical lane widths (4, 8, 16) and let per-ISA
// build-tagged files supply the real instructions, falling back to plain Go
// loops when no SIMD extension is available or GOEXPERIMENT=simd is not set.
//
//	v := simd.Load4(a)
//	mask := simd.Equal4(v, simd.Load4(b))
//	n := simd.CompressStore4(v, mask, out)
package simd

// Vec4, Vec8, Vec16 are fixed-width int32 vectors. Unlike a generic Vec[T],
// set intersection only ever operates on 32-bit signed integers, so the
// lane type is concrete; only the lane count varies.
type Vec4 struct{ lanes [4]int32 }
type Vec8 struct{ lanes [8]int32 }
type Vec16 struct{ lanes [16]int32 }

// Mask4, Mask8, Mask16 carry one bit per lane, LSB first, matching the
// bit order visitors must emit in (ascending lane index within a vector).
type Mask4 uint8
type Mask8 uint8
type Mask16 uint16

func (v Vec4) At(i int) int32  { return v.lanes[i] }
func (v Vec8) At(i int) int32  { return v.lanes[i] }
func (v Vec16) At(i int) int32 { return v.lanes[i] }

func (v Vec4) Array() [4]int32   { return v.lanes }
func (v Vec8) Array() [8]int32   { return v.lanes }
func (v Vec16) Array() [16]int32 { return v.lanes }
