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

// NaiveMerge is the textbook three-way merge: advance A on <, advance B on
// >, emit and advance both on =. Every other kernel's output must equal
// this one (property 1, SPEC_FULL.md §8).
func NaiveMerge(a, b []int32, v visitor.FullVisitor) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			v.Visit(a[i])
			i++
			j++
		}
	}
}

// BranchlessMerge implements the same merge with a branch-minimized
// compare: both increments are computed unconditionally and only the visit
// is conditional, so a cmov-capable compiler can keep this loop free of
// unpredictable branches. Used as the universal tail handler after every
// SIMD prologue in this package.
func BranchlessMerge(a, b []int32, v visitor.FullVisitor) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		va, vb := a[i], b[j]
		if va == vb {
			v.Visit(va)
		}
		// Exactly one of these increments always fires on the <,> cases;
		// on equality both fire. No branch depends on which index to bump.
		i += b2i(va <= vb)
		j += b2i(vb <= va)
	}
}

func b2i(cond bool) int {
	if cond {
		return 1
	}
	return 0
}
