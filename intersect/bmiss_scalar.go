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

import "github.com/setops-go/setops/visitor"

// BmissScalar3x processes 3 elements of A against 3 of B per outer step: it
// compares every pair in the 3x3 tile and advances whichever side's tile
// has the smaller last element (both on a tie). Once fewer than 3 elements
// remain on either side, the remaining tails are finished with
// BranchlessMerge. Output order matches NaiveMerge.
func BmissScalar3x(a, b []int32, v visitor.FullVisitor) {
	bmissScalar(a, b, 3, v)
}

// BmissScalar4x is BmissScalar3x with a 4x4 tile.
func BmissScalar4x(a, b []int32, v visitor.FullVisitor) {
	bmissScalar(a, b, 4, v)
}

func bmissScalar(a, b []int32, tile int, v visitor.FullVisitor) {
	i, j := 0, 0
	for i+tile <= len(a) && j+tile <= len(b) {
		aMax := a[i+tile-1]
		bMax := b[j+tile-1]

		for x := i; x < i+tile; x++ {
			for y := j; y < j+tile; y++ {
				if a[x] == b[y] {
					v.Visit(a[x])
				}
			}
		}

		if aMax <= bMax {
			i += tile
		}
		if bMax <= aMax {
			j += tile
		}
	}

	BranchlessMerge(a[i:], b[j:], v)
}
