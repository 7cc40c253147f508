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

// Vp2IntersectEmulation emulates Intel's vp2intersectd (AVX-512) via
// cross-lane comparisons: it produces two masks — positions in va that
// match some lane of vb, and vice versa — using an all-pairs compare
// (the same cross product vpconflictd-free machines must fall back to
// when vp2intersectd itself is unavailable or masked out by errata). Only
// the va mask is used for emission; the vb mask exists because the real
// instruction always produces both, and FESIA-style callers may want the
// complementary side.
func Vp2IntersectEmulation(a, b []int32, v visitor.FullVisitor) {
	const w = 16
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load16(a[i:])
		vb := simd.Load16(b[j:])
		for {
			maskA, _ := vp2Intersect16(va, vb)
			v.VisitVector16(va, maskA)

			aMax := a[i+w-1]
			bMax := b[j+w-1]
			if aMax <= bMax {
				i += w
				if i == stA {
					break
				}
				va = simd.Load16(a[i:])
			}
			if bMax <= aMax {
				j += w
				if j == stB {
					break
				}
				vb = simd.Load16(b[j:])
			}
		}
	}

	BranchlessMerge(a[i:], b[j:], v)
}

// vp2Intersect16 computes, for each lane of a (resp. b), whether it equals
// any lane of b (resp. a) — an explicit all-pairs reduction standing in
// for the permutation network vpconflictd/vp2intersectd use in hardware.
func vp2Intersect16(a, b simd.Vec16) (maskA, maskB simd.Mask16) {
	for ia := 0; ia < 16; ia++ {
		for ib := 0; ib < 16; ib++ {
			if a.At(ia) == b.At(ib) {
				maskA |= 1 << uint(ia)
				maskB |= 1 << uint(ib)
			}
		}
	}
	return maskA, maskB
}
