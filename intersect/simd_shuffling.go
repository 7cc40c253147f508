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

// ShufflingSSE is the SIMD shuffling set intersection algorithm (Ilya
// Katsov, 2012): compare one 4-lane vector of A against all 4 cyclic
// rotations of a 4-lane vector of B, OR the resulting masks into a single
// lane-presence mask over A, and compress-store the hits. Whichever side's
// last element is <= the other's advances by the lane width; on a tie both
// advance. Terminates with BranchlessMerge on the residual tails.
func ShufflingSSE(a, b []int32, v visitor.FullVisitor) {
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

// ShufflingAVX2 is ShufflingSSE widened to 8 lanes.
func ShufflingAVX2(a, b []int32, v visitor.FullVisitor) {
	const w = 8
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load8(a[i:])
		vb := simd.Load8(b[j:])
		for {
			var mask simd.Mask8
			for r := 1; r < w; r++ {
				mask |= simd.Equal8(va, simd.RotateLeft8(vb, r))
			}
			mask |= simd.Equal8(va, vb)

			v.VisitVector8(va, mask)

			aMax := a[i+w-1]
			bMax := b[j+w-1]
			if aMax <= bMax {
				i += w
				if i == stA {
					break
				}
				va = simd.Load8(a[i:])
			}
			if bMax <= aMax {
				j += w
				if j == stB {
					break
				}
				vb = simd.Load8(b[j:])
			}
		}
	}

	BranchlessMerge(a[i:], b[j:], v)
}

// ShufflingAVX512 is ShufflingSSE widened to 16 lanes.
func ShufflingAVX512(a, b []int32, v visitor.FullVisitor) {
	const w = 16
	stA := (len(a) / w) * w
	stB := (len(b) / w) * w

	i, j := 0, 0
	if i < stA && j < stB {
		va := simd.Load16(a[i:])
		vb := simd.Load16(b[j:])
		for {
			var mask simd.Mask16
			for r := 1; r < w; r++ {
				mask |= simd.Equal16(va, simd.RotateLeft16(vb, r))
			}
			mask |= simd.Equal16(va, vb)

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
