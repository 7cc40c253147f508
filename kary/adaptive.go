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

package kary

import (
	"sort"

	"github.com/setops-go/setops/visitor"
)

// Adaptive intersects k sorted sets by treating the smallest set as the
// candidate source: for each of its elements, gallop-search every other
// set in turn, bailing out on the first miss. sets must have length >= 2
// and be ordered ascending by cardinality, same precondition as Svs. Each
// of the k-1 larger sets keeps its own monotonically advancing cursor, so
// the total work is bounded by the galloping cost against each candidate
// that survives every earlier set's check.
func Adaptive(sets [][]int32, v visitor.FullVisitor) {
	if len(sets) < 2 {
		panic("kary: Adaptive requires at least 2 sets")
	}
	pivots := sets[0]
	others := sets[1:]
	cursors := make([]int, len(others))

candidate:
	for _, x := range pivots {
		for k, set := range others {
			pos, found := gallopFind(set, cursors[k], x)
			if !found {
				continue candidate
			}
			cursors[k] = pos
		}
		v.Visit(x)
	}
}

// SmallAdaptive is Adaptive with one refinement from the small-adaptive
// literature: at each candidate, the other sets are probed in ascending
// order of their current remaining range (len(set)-cursor), so a miss is
// found via the cheapest possible search first instead of in a fixed
// left-to-right order.
func SmallAdaptive(sets [][]int32, v visitor.FullVisitor) {
	if len(sets) < 2 {
		panic("kary: SmallAdaptive requires at least 2 sets")
	}
	pivots := sets[0]
	others := sets[1:]
	cursors := make([]int, len(others))
	order := make([]int, len(others))
	for i := range order {
		order[i] = i
	}

candidate:
	for _, x := range pivots {
		sort.Slice(order, func(i, j int) bool {
			ri := len(others[order[i]]) - cursors[order[i]]
			rj := len(others[order[j]]) - cursors[order[j]]
			return ri < rj
		})
		for _, k := range order {
			pos, found := gallopFind(others[k], cursors[k], x)
			if !found {
				continue candidate
			}
			cursors[k] = pos
		}
		v.Visit(x)
	}
}

// gallopFind locates x in set[lo:], returning (index of x, true) on a hit
// or (insertion point, false) on a miss — the same exponential-probe then
// binary-search shape intersect.Galloping uses internally, kept local to
// this package since k-ary composition needs cursor state per set rather
// than a single smaller/larger pairing.
func gallopFind(set []int32, lo int, x int32) (int, bool) {
	if lo >= len(set) {
		return lo, false
	}
	if set[lo] == x {
		return lo, true
	}
	if set[lo] > x {
		return lo, false
	}

	prev := lo
	step := 1
	cur := lo + step
	for cur < len(set) && set[cur] <= x {
		prev = cur
		step *= 2
		cur = lo + step
		if cur > len(set) {
			cur = len(set)
		}
	}
	hi := cur
	if hi > len(set) {
		hi = len(set)
	}

	idx := prev + sort.Search(hi-prev, func(i int) bool {
		return set[prev+i] >= x
	})
	if idx < len(set) && set[idx] == x {
		return idx, true
	}
	return idx, false
}
