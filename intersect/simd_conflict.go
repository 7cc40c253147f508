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

// ConflictIntersect (AVX-512-CD) repurposes vpconflictd, an instruction
// meant to find duplicate values within a single vector, for intersection:
// it concatenates a 16-lane tile of A with a 16-lane tile of B into one
// logical 32-element window and asks, for each of A's lanes, whether any
// later lane (necessarily one of B's, since A's own lanes are already
// duplicate-free) carries the same value. A "conflict" against the B half
// is exactly a match.
func ConflictIntersect(a, b []int32, v visitor.FullVisitor) {
	const w = 16
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load16(a[i:])
		vb := simd.Load16(b[j:])
		for {
			mask := conflictMask16(va, vb)
			v.VisitVector16(va, mask)

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

// conflictMask16 reports, per lane of a, whether it conflicts (is equal to)
// any lane of b — the vpconflictd-style duplicate-detection step, applied
// across the A/B boundary instead of within a single vector.
func conflictMask16(a, b simd.Vec16) simd.Mask16 {
	var mask simd.Mask16
	for ia := 0; ia < 16; ia++ {
		x := a.At(ia)
		for ib := 0; ib < 16; ib++ {
			if x == b.At(ib) {
				mask |= 1 << uint(ia)
				break
			}
		}
	}
	return mask
}
