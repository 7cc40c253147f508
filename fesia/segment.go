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
	"github.com/setops-go/setops/intersect"
	"github.com/setops-go/setops/visitor"
)

// SegmentIntersect is the pluggable policy intersectBlock dispatches a
// candidate segment pair to. setA, setB are the two segments' payload
// slices, starting at each segment's offset and extending past
// sizeA/sizeB (the segment's true element count) into the following
// segments, up to the end of the backing array (setA) or of the current
// block (setB); they may still be shorter than 8 elements near those ends.
// Elements past the true size belong to later segments in hash-bucket
// order and can never spuriously equal anything in this pair, so kernels
// may overread them as far as the slice length allows.
type SegmentIntersect interface {
	Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor)
}

const (
	maxMicroKernelSize = 7
	overflowDepth      = 8
)

// fallback runs branchless_merge over the exact (unpadded) segments; used
// whenever a segment pair is too large, or too close to the end of its
// backing array, for the overread-tolerant micro-kernels to be safe.
func fallback(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	intersect.BranchlessMerge(setA[:sizeA], setB[:sizeB], v)
}

func tooLargeForMicroKernel(setA, setB []int32, sizeA, sizeB int) bool {
	return sizeA > maxMicroKernelSize || sizeB > maxMicroKernelSize ||
		len(setA) < overflowDepth || len(setB) < overflowDepth
}

// orderBySize returns (small, smallSize, large, largeSize) — whichever of
// (setA,sizeA)/(setB,sizeB) has the smaller true size goes first, matching
// the control byte convention ctrl = (small_size<<3) | large_size.
func orderBySize(setA, setB []int32, sizeA, sizeB int) ([]int32, int, []int32, int) {
	if sizeA <= sizeB {
		return setA, sizeA, setB, sizeB
	}
	return setB, sizeB, setA, sizeA
}

type microKernel func(small, large []int32, v visitor.FullVisitor)

// SegmentIntersectTableSSE dispatches via a precomputed [0o100]microKernel
// array indexed directly by control byte — the "table form" the spec
// requires to behave identically to the splat/switch form below.
type SegmentIntersectTableSSE struct{}

func (SegmentIntersectTableSSE) Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	if tooLargeForMicroKernel(setA, setB, sizeA, sizeB) {
		fallback(setA, setB, sizeA, sizeB, v)
		return
	}
	small, smallSize, large, largeSize := orderBySize(setA, setB, sizeA, sizeB)
	ctrl := (smallSize << 3) | largeSize
	microKernelTable[ctrl](small, large, v)
}

// microKernelTable is built once at package init, filled with unknown for
// every control byte no (m,n) pair covers — reaching one of those is a
// dispatch bug, not a valid "no kernel for this size" outcome, since
// tooLargeForMicroKernel already rejected every size combination the table
// doesn't cover.
var microKernelTable = buildMicroKernelTable()

func buildMicroKernelTable() [0o100]microKernel {
	var t [0o100]microKernel
	for i := range t {
		t[i] = unknown
	}
	for ctrl := 0o11; ctrl <= 0o14; ctrl++ {
		t[ctrl] = sse1x4
	}
	for ctrl := 0o15; ctrl <= 0o17; ctrl++ {
		t[ctrl] = sse1x8
	}
	for ctrl := 0o22; ctrl <= 0o24; ctrl++ {
		t[ctrl] = sse2x4
	}
	for ctrl := 0o25; ctrl <= 0o27; ctrl++ {
		t[ctrl] = sse2x8
	}
	for ctrl := 0o33; ctrl <= 0o34; ctrl++ {
		t[ctrl] = sse3x4
	}
	for ctrl := 0o35; ctrl <= 0o37; ctrl++ {
		t[ctrl] = sse3x8
	}
	t[0o44] = sse4x4
	for ctrl := 0o45; ctrl <= 0o47; ctrl++ {
		t[ctrl] = sse4x8
	}
	for ctrl := 0o55; ctrl <= 0o57; ctrl++ {
		t[ctrl] = sse5x8
	}
	for ctrl := 0o66; ctrl <= 0o67; ctrl++ {
		t[ctrl] = sse6x8
	}
	t[0o77] = sse7x8
	return t
}

// SegmentIntersectSplatSSE dispatches the same (m,n) pairs as
// SegmentIntersectTableSSE but via an explicit per-control-byte switch
// instead of an array lookup — the "splatted match form" the spec
// requires to be behaviorally equivalent to the table form.
type SegmentIntersectSplatSSE struct{}

func (SegmentIntersectSplatSSE) Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	if tooLargeForMicroKernel(setA, setB, sizeA, sizeB) {
		fallback(setA, setB, sizeA, sizeB, v)
		return
	}
	small, smallSize, large, largeSize := orderBySize(setA, setB, sizeA, sizeB)
	ctrl := (smallSize << 3) | largeSize
	switch ctrl {
	case 0o11, 0o12, 0o13, 0o14:
		sse1x4(small, large, v)
	case 0o15, 0o16, 0o17:
		sse1x8(small, large, v)
	case 0o22, 0o23, 0o24:
		sse2x4(small, large, v)
	case 0o25, 0o26, 0o27:
		sse2x8(small, large, v)
	case 0o33, 0o34:
		sse3x4(small, large, v)
	case 0o35, 0o36, 0o37:
		sse3x8(small, large, v)
	case 0o44:
		sse4x4(small, large, v)
	case 0o45, 0o46, 0o47:
		sse4x8(small, large, v)
	case 0o55, 0o56, 0o57:
		sse5x8(small, large, v)
	case 0o66, 0o67:
		sse6x8(small, large, v)
	case 0o77:
		sse7x8(small, large, v)
	default:
		unknown(small, large, v)
	}
}

// SegmentIntersectShufflingSSE ignores segment sizes entirely and runs the
// full-width shuffling kernel on the size-restricted slices, per the
// spec's "Shuffling kernel: ignore sizes, run the full shuffling kernel on
// the size-restricted slices."
type SegmentIntersectShufflingSSE struct{}

func (SegmentIntersectShufflingSSE) Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	intersect.ShufflingSSE(setA[:sizeA], setB[:sizeB], v)
}

// SegmentIntersectShufflingAVX2 is SegmentIntersectShufflingSSE widened to
// the 8-lane shuffling kernel.
type SegmentIntersectShufflingAVX2 struct{}

func (SegmentIntersectShufflingAVX2) Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	intersect.ShufflingAVX2(setA[:sizeA], setB[:sizeB], v)
}

// SegmentIntersectShufflingAVX512 is SegmentIntersectShufflingSSE widened
// to the 16-lane shuffling kernel.
type SegmentIntersectShufflingAVX512 struct{}

func (SegmentIntersectShufflingAVX512) Intersect(setA, setB []int32, sizeA, sizeB int, v visitor.FullVisitor) {
	intersect.ShufflingAVX512(setA[:sizeA], setB[:sizeB], v)
}
