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

package fesia

import (
	"github.com/setops-go/setops/simd"
	"github.com/setops-go/setops/visitor"
)

// segMicroKernel is the shared body behind every sse_MxN micro-kernel: load
// an N-wide vector from large (N is 4 or 8; callers dispatch here only
// after tooLargeForMicroKernel has confirmed both slices are at least 8
// elements long), then for each of the small side's m valid elements,
// broadcast-compare it against the N-wide vector. Hits are visited in
// small's order, which is ascending since a segment's payload preserves the
// original sorted order. Kernels never read size_a/size_b from the caller
// beyond m: everything past element m in small is known-garbage overflow
// from the next segment and must not be compared.
func segMicroKernel(small, large []int32, m, n int, v visitor.FullVisitor) {
	switch n {
	case 4:
		vl := simd.Load4(large)
		for i := 0; i < m; i++ {
			x := small[i]
			if simd.Equal4(simd.Splat4(x), vl) != 0 {
				v.Visit(x)
			}
		}
	case 8:
		vl := simd.Load8(large)
		for i := 0; i < m; i++ {
			x := small[i]
			if simd.Equal8(simd.Splat8(x), vl) != 0 {
				v.Visit(x)
			}
		}
	}
}

// The eleven named micro-kernels below are exactly the (m, n) pairs
// original_source's SSE kernel table dispatches to: m is the smaller
// segment's exact size (1..7), n is the padded width of the larger
// segment's vector load (4 or 8, whichever the larger segment's size fits
// within). segment.go's table and switch dispatchers both resolve to these
// same eleven functions.

func sse1x4(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 1, 4, v) }
func sse1x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 1, 8, v) }
func sse2x4(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 2, 4, v) }
func sse2x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 2, 8, v) }
func sse3x4(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 3, 4, v) }
func sse3x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 3, 8, v) }
func sse4x4(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 4, 4, v) }
func sse4x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 4, 8, v) }
func sse5x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 5, 8, v) }
func sse6x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 6, 8, v) }
func sse7x8(small, large []int32, v visitor.FullVisitor) { segMicroKernel(small, large, 7, 8, v) }

// unknown is the table's fill value for control bytes no micro-kernel
// covers; reaching it is a dispatch bug (tooLargeForMicroKernel already
// restricts callers to the valid range), so it panics rather than silently
// misbehaving.
func unknown(small, large []int32, v visitor.FullVisitor) {
	panic("fesia: segment kernel table reached an unassigned control byte")
}
