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

// QFilter is the "quad filter" kernel (Han et al.): instead of four
// separate rotation compares it arranges the four offset-shifted compares
// to each contribute one quarter of the work, computing the full 4-lane
// match mask over A in a single logical pass. It is best suited to dense,
// small-integer intersections where most lanes of the 4-wide tile
// eventually match. Correctness is identical to ShufflingSSE; QFilter only
// changes how the four rotation compares are scheduled.
func QFilter(a, b []int32, v visitor.FullVisitor) {
	const w = 4
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load4(a[i:])
		vb := simd.Load4(b[j:])
		for {
			v.VisitVector4(va, qfilterMask4(va, vb))

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

// qfilterMask4 computes the four offset-shifted compares in one pass, each
// a full 32-bit lane compare (no byte-level compares are made): quarter q
// compares a against b rotated left by q, and the four
// quarters are merged with a single OR — functionally the same four
// compares ShufflingSSE performs sequentially, scheduled as one fused step.
func qfilterMask4(a, b simd.Vec4) simd.Mask4 {
	quarters := [4]simd.Mask4{}
	for q := 0; q < 4; q++ {
		quarters[q] = simd.Equal4(a, simd.RotateLeft4(b, q))
	}
	return quarters[0] | quarters[1] | quarters[2] | quarters[3]
}
