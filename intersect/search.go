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
	"sort"

	"github.com/setops-go/setops/visitor"
)

// Galloping intersects the smaller of a, b against the larger: for each
// element of the smaller side it exponentially searches (doubling stride)
// then binary-searches its position in the larger side, emits on a hit,
// and skips the larger side's cursor past the found position. Complexity
// is O(|small| * log(|large|/|small|)).
func Galloping(a, b []int32, v visitor.FullVisitor) {
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}

	lo := 0
	for _, x := range small {
		if lo >= len(large) {
			break
		}
		pos, found := gallopSearch(large, lo, x)
		if found {
			v.Visit(x)
			lo = pos + 1
		} else {
			lo = pos
		}
	}
}

// gallopSearch finds x in large[lo:], returning (index of x, true) on a
// hit or (insertion point, false) on a miss. It exponentially probes
// offsets 1, 2, 4, 8, ... from lo until it brackets x, then binary-searches
// the bracket — the classic gallop search used throughout the literature.
func gallopSearch(large []int32, lo int, x int32) (int, bool) {
	if lo >= len(large) {
		return lo, false
	}
	if large[lo] == x {
		return lo, true
	}
	if large[lo] > x {
		return lo, false
	}

	prev := lo
	step := 1
	cur := lo + step
	for cur < len(large) && large[cur] <= x {
		prev = cur
		step *= 2
		cur = lo + step
		if cur > len(large) {
			cur = len(large)
		}
	}
	hi := cur
	if hi > len(large) {
		hi = len(large)
	}

	// Binary search the bracket (prev, hi) for x.
	lower := prev
	upper := hi
	idx := lower + sort.Search(upper-lower, func(i int) bool {
		return large[lower+i] >= x
	})
	if idx < len(large) && large[idx] == x {
		return idx, true
	}
	return idx, false
}

// GallopingInplace is Galloping specialized for SvS: it writes matches back
// into small from the front. This is safe because the write index never
// exceeds the read index, and small is assumed to already be the smaller,
// previously-accumulated output. Returns the new length.
func GallopingInplace(small []int32, large []int32) int {
	write := 0
	lo := 0
	for read := 0; read < len(small); read++ {
		x := small[read]
		if lo >= len(large) {
			break
		}
		pos, found := gallopSearch(large, lo, x)
		if found {
			small[write] = x
			write++
			lo = pos + 1
		} else {
			lo = pos
		}
	}
	return write
}

// BaezaYates implements the recursive double binary search algorithm:
// locate the median of the smaller side in the larger side, recurse on
// both halves split at that point. It has the same O(n+m) worst case as
// Galloping but tends to do better when one side's median frequently
// misses, since each recursive call narrows both sides at once.
func BaezaYates(a, b []int32, v visitor.FullVisitor) {
	baezaYates(a, b, v)
}

func baezaYates(a, b []int32, v visitor.FullVisitor) {
	if len(a) == 0 || len(b) == 0 {
		return
	}
	// Recurse on the smaller side's median so each split is balanced
	// against the larger side's search cost.
	small, large := a, b
	swapped := false
	if len(small) > len(large) {
		small, large = large, small
		swapped = true
	}

	mid := len(small) / 2
	pivot := small[mid]

	pos := sort.Search(len(large), func(i int) bool { return large[i] >= pivot })

	if swapped {
		baezaYates(large[:pos], small[:mid], v)
	} else {
		baezaYates(small[:mid], large[:pos], v)
	}

	if pos < len(large) && large[pos] == pivot {
		v.Visit(pivot)
		pos++
	}

	if swapped {
		baezaYates(large[pos:], small[mid+1:], v)
	} else {
		baezaYates(small[mid+1:], large[pos:], v)
	}
}
