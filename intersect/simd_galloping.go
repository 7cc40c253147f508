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

package intersect

import (
	"math/bits"

	"github.com/setops-go/setops/simd"
	"github.com/setops-go/setops/visitor"
)

// GallopingSIMDSSE combines galloping search with a SIMD confirm step: for
// each scalar pivot from the smaller side, it exponentially searches the
// larger side (window widths 4, 8, 16, ... lanes) until the window's last
// element is >= the pivot, then scans that window one lane-width vector at
// a time against the pivot broadcast across all lanes, instead of a scalar
// binary search.
func GallopingSIMDSSE(a, b []int32, v visitor.FullVisitor) {
	gallopingSIMD4(a, b, v)
}

func gallopingSIMD4(a, b []int32, v visitor.FullVisitor) {
	const w = 4
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	lo := 0
	for _, x := range small {
		if lo >= len(large) {
			break
		}
		win := gallopWindow(large, lo, x, w)
		if win.found {
			v.Visit(x)
		}
		lo = win.next
	}
}

type gallopWindowResult struct {
	found bool
	next  int
}

// gallopWindow exponentially searches for a lane-width window of large
// enclosing x, starting at lo, then confirms membership with a single
// SIMD compare against the pivot broadcast to all lanes. next is the
// index to resume scanning from (past any elements known to be < x).
func gallopWindow(large []int32, lo int, x int32, w int) gallopWindowResult {
	if lo >= len(large) {
		return gallopWindowResult{false, lo}
	}
	step := w
	end := lo + step
	for end < len(large) && large[end-1] < x {
		lo = end
		step *= 2
		end = lo + step
	}
	if end > len(large) {
		end = len(large)
	}

	switch w {
	case 4:
		return scanWindow4(large, lo, end, x)
	case 8:
		return scanWindow8(large, lo, end, x)
	default:
		return scanWindow16(large, lo, end, x)
	}
}

func scanWindow4(large []int32, lo, end int, x int32) gallopWindowResult {
	pivot := simd.Splat4(x)
	i := lo
	for i+4 <= end {
		v := simd.Load4(large[i:])
		mask := simd.Equal4(v, pivot)
		if mask != 0 {
			return gallopWindowResult{true, i + bits.TrailingZeros8(uint8(mask)) + 1}
		}
		if large[i+3] > x {
			return gallopWindowResult{false, i}
		}
		i += 4
	}
	return tailScan(large, i, end, x)
}

func scanWindow8(large []int32, lo, end int, x int32) gallopWindowResult {
	pivot := simd.Splat8(x)
	i := lo
	for i+8 <= end {
		v := simd.Load8(large[i:])
		mask := simd.Equal8(v, pivot)
		if mask != 0 {
			return gallopWindowResult{true, i + bits.TrailingZeros8(uint8(mask)) + 1}
		}
		if large[i+7] > x {
			return gallopWindowResult{false, i}
		}
		i += 8
	}
	return tailScan(large, i, end, x)
}

func scanWindow16(large []int32, lo, end int, x int32) gallopWindowResult {
	pivot := simd.Splat16(x)
	i := lo
	for i+16 <= end {
		v := simd.Load16(large[i:])
		mask := simd.Equal16(v, pivot)
		if mask != 0 {
			return gallopWindowResult{true, i + bits.TrailingZeros16(uint16(mask)) + 1}
		}
		if large[i+15] > x {
			return gallopWindowResult{false, i}
		}
		i += 16
	}
	return tailScan(large, i, end, x)
}

func tailScan(large []int32, i, end int, x int32) gallopWindowResult {
	for ; i < end; i++ {
		if large[i] == x {
			return gallopWindowResult{true, i + 1}
		}
		if large[i] > x {
			return gallopWindowResult{false, i}
		}
	}
	return gallopWindowResult{false, i}
}

// GallopingSIMDAVX2 widens the SIMD confirm step to 8 lanes.
func GallopingSIMDAVX2(a, b []int32, v visitor.FullVisitor) {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	lo := 0
	for _, x := range small {
		if lo >= len(large) {
			break
		}
		win := gallopWindow(large, lo, x, 8)
		if win.found {
			v.Visit(x)
		}
		lo = win.next
	}
}

// GallopingSIMDAVX512 widens the SIMD confirm step to 16 lanes.
func GallopingSIMDAVX512(a, b []int32, v visitor.FullVisitor) {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	lo := 0
	for _, x := range small {
		if lo >= len(large) {
			break
		}
		win := gallopWindow(large, lo, x, 16)
		if win.found {
			v.Visit(x)
		}
		lo = win.next
	}
}
