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
	"github.com/setops-go/setops/simd"
	"github.com/setops-go/setops/visitor"
)

// BmissSSE (Byte-MISS) splits each lane into low/high 16-bit halves and
// compares them separately across all cyclic rotations of B, the way the
// real SSE kernel does with packed 16-bit compares to get two comparisons
// per instruction where a full 32-bit compare would only get one. A lane
// is a true match only when both halves agree, so the final mask is the
// AND of the low-half and high-half rotation masks.
func BmissSSE(a, b []int32, v visitor.FullVisitor) {
	const w = 4
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load4(a[i:])
		vb := simd.Load4(b[j:])
		for {
			v.VisitVector4(va, bmissMask4(va, vb))

			aMax := a[i+w-1]
			bMax := b[j+w-1]
			if aMax <= bMax {
				i += w
				if i == stA {
					break
				}
				va = simd.Load4(a[i:])
			}
			if bMax <= aMax {
				j += w
				if j == stB {
					break
				}
				vb = simd.Load4(b[j:])
			}
		}
	}

	BranchlessMerge(a[i:], b[j:], v)
}

// bmissMask4 computes the lane-presence mask over a the way the real BMISS
// kernel does: for each rotation of b, a cheap low-16-bit compare narrows
// candidates and a high-16-bit compare over the same rotation confirms
// them (both halves must agree within the same rotation — combining low
// matches from one rotation with high matches from another would produce
// false positives). The per-rotation confirmed masks are then OR-ed, same
// as ShufflingSSE's full 32-bit rotation compare.
func bmissMask4(a, b simd.Vec4) simd.Mask4 {
	var mask simd.Mask4
	for r := 0; r < 4; r++ {
		rb := simd.RotateLeft4(b, r)
		mask |= halvesEqual4(a, rb)
	}
	return mask
}

// halvesEqual4 reports, per lane, whether both the low and high 16-bit
// halves of a and b agree — equivalent to a full 32-bit compare, computed
// as two 16-bit packed compares the way the real kernel does it.
func halvesEqual4(a, b simd.Vec4) simd.Mask4 {
	var low, high simd.Mask4
	for lane := 0; lane < 4; lane++ {
		if int16(a.At(lane)) == int16(b.At(lane)) {
			low |= 1 << uint(lane)
		}
		if int16(a.At(lane)>>16) == int16(b.At(lane)>>16) {
			high |= 1 << uint(lane)
		}
	}
	return low & high
}

// BmissSSESTTNI is the STTNI (string/text instruction) variant: it forms
// the full lane-presence mask directly from full 32-bit compares of a
// against all W rotations of b, OR-ed together, with no intermediate
// low/high merge step. No PCMPxSTRx instruction is issued; the four
// rotation compares run as separate Equal4 calls.
func BmissSSESTTNI(a, b []int32, v visitor.FullVisitor) {
	const w = 4
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load4(a[i:])
		vb := simd.Load4(b[j:])
		for {
			mask := simd.Equal4(va, vb) |
				simd.Equal4(va, simd.RotateLeft4(vb, 1)) |
				simd.Equal4(va, simd.RotateLeft4(vb, 2)) |
				simd.Equal4(va, simd.RotateLeft4(vb, 3))
			v.VisitVector4(va, mask)

			aMax := a[i+w-1]
			bMax := b[j+w-1]
			if aMax <= bMax {
				i += w
				if i == stA {
					break
				}
				va = simd.Load4(a[i:])
			}
			if bMax <= aMax {
				j += w
				if j == stB {
					break
				}
				vb = simd.Load4(b[j:])
			}
		}
	}

	BranchlessMerge(a[i:], b[j:], v)
}
