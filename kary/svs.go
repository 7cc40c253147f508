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

// Package kary composes the 2-set kernels in package intersect into k-ary
// intersection: SvS (small-versus-small, in-place and alternating-buffer
// variants), the adaptive/small-adaptive algorithm, and a parallel runner
// for independent k-ary jobs.
package kary

import (
	"github.com/setops-go/setops/intersect"
	"github.com/setops-go/setops/visitor"
)

// Svs is the in-place "small vs. small" k-ary algorithm. sets must have
// length >= 2 and be ordered ascending by cardinality (caller precondition,
// same as the 2-set kernels' sortedness precondition). out must have
// capacity >= len(sets[0]); Svs copies the smallest set into out and
// repeatedly gallops each subsequent set against the accumulated result,
// shrinking count monotonically. Returns the final intersection length.
func Svs(sets [][]int32, out []int32) int {
	if len(sets) < 2 {
		panic("kary: Svs requires at least 2 sets")
	}
	count := copy(out, sets[0])
	for _, set := range sets[1:] {
		count = intersect.GallopingInplace(out[:count], set)
	}
	return count
}

// AsSvs extends a 2-set kernel that cannot write in place (any SIMD kernel:
// its output visitor and input vectors are disjoint memory) to k sets by
// ping-ponging between two caller-supplied scratch buffers, each sized to
// at least len(sets[0]). kernel is typically one of the intersect package's
// SIMD kernels wrapped to drive a visitor.SliceWriter. Returns the
// intersection length and which buffer (0 or 1) holds the final result.
func AsSvs(sets [][]int32, out0, out1 []int32, kernel intersect.Intersect2) (count int, which int) {
	if len(sets) < 2 {
		panic("kary: AsSvs requires at least 2 sets")
	}

	w := visitor.NewSliceWriter(out1)
	kernel(sets[0], sets[1], w)
	count = w.Len()
	which = 1

	for _, setB := range sets[2:] {
		var setA []int32
		var dst []int32
		if which == 1 {
			setA = out1[:count]
			dst = out0
		} else {
			setA = out0[:count]
			dst = out1
		}
		w := visitor.NewSliceWriter(dst)
		kernel(setA, setB, w)
		count = w.Len()
		which = 1 - which
	}

	return count, which
}
