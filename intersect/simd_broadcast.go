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

// BroadcastSSE is the broadcast variant of the SIMD matcher: for each lane
// of A, broadcast it and compare against all of B. OR-ing the W resulting
// masks gives a presence mask over B (not over A as in ShufflingSSE) — bit
// i set means b[i] equals some lane of A. Correctness is symmetric to
// ShufflingSSE; only which side's vector gets visited differs.
func BroadcastSSE(a, b []int32, v visitor.FullVisitor) {
	const w = 4
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load4(a[i:])
		vb := simd.Load4(b[j:])
		for {
			v.VisitVector4(vb, broadcastMaskOverB4(va, vb))

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

// broadcastMaskOverB4 ORs, for each lane of a broadcast across all lanes,
// the equality mask against b — producing a presence mask over b's lanes.
func broadcastMaskOverB4(a, b simd.Vec4) simd.Mask4 {
	var mask simd.Mask4
	for lane := 0; lane < 4; lane++ {
		bc := simd.BroadcastLane4(a, lane)
		mask |= simd.Equal4(bc, b)
	}
	return mask
}
