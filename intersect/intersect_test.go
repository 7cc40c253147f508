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
	"testing"

	"github.com/setops-go/setops/visitor"
)

// allKernels lists every kernel in this package regardless of the current
// process's detected SIMD level — unlike Named/Names, tests want to
// exercise the portable Go-loop implementation of every kernel even when
// the hardware lane width would otherwise hide it from the dispatch table.
func allKernels() map[string]Intersect2 {
	return map[string]Intersect2{
		"naive_merge":            NaiveMerge,
		"branchless_merge":       BranchlessMerge,
		"bmiss_scalar_3x":        BmissScalar3x,
		"bmiss_scalar_4x":        BmissScalar4x,
		"galloping":              Galloping,
		"baezayates":             BaezaYates,
		"shuffling_sse":          ShufflingSSE,
		"shuffling_avx2":         ShufflingAVX2,
		"shuffling_avx512":       ShufflingAVX512,
		"broadcast_sse":          BroadcastSSE,
		"bmiss_sse":              BmissSSE,
		"bmiss_sse_sttni":        BmissSSESTTNI,
		"qfilter":                QFilter,
		"galloping_simd_sse":     GallopingSIMDSSE,
		"galloping_simd_avx2":    GallopingSIMDAVX2,
		"galloping_simd_avx512":  GallopingSIMDAVX512,
		"vp2intersect_emulation": Vp2IntersectEmulation,
		"conflict_intersect":     ConflictIntersect,
	}
}

// naiveIntersect computes the reference intersection directly, independent
// of any kernel under test, for use as the expected sequence.
func naiveIntersect(a, b []int32) []int32 {
	var want []int32
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			want = append(want, a[i])
			i++
			j++
		}
	}
	return want
}

func run(t *testing.T, name string, fn Intersect2, a, b []int32) {
	t.Helper()
	want := naiveIntersect(a, b)
	e := visitor.NewEnsurer(want)
	fn(a, b, e)
	if !e.Ok() {
		t.Errorf("%s(%v, %v): %v", name, a, b, e.Mismatches())
	}
}

func TestKernelsAgainstNaiveMerge(t *testing.T) {
	cases := []struct {
		name string
		a, b []int32
	}{
		{"both empty", nil, nil},
		{"a empty", nil, []int32{1, 2, 3}},
		{"b empty", []int32{1, 2, 3}, nil},
		{"disjoint", []int32{1, 3, 5, 7}, []int32{2, 4, 6, 8}},
		{"identical", []int32{1, 2, 3, 4, 5}, []int32{1, 2, 3, 4, 5}},
		{"one element each", []int32{5}, []int32{5}},
		{"one element miss", []int32{5}, []int32{6}},
		{"interleaved", []int32{1, 2, 3, 4, 5, 6, 7, 8}, []int32{2, 4, 6, 8, 10, 12}},
		{"skewed sizes", []int32{1, 50, 100, 150, 999}, seqRange(1, 1000)},
		{"simd lane boundary", seqRange(1, 1025), seqRange(512, 1536)},
		{"duplicated boundary tile", seqRange(1, 33), seqRange(16, 49)},
		{"a subset of b", []int32{10, 20, 30}, seqRange(1, 100)},
	}

	for name, fn := range allKernels() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			for _, c := range cases {
				run(t, name, fn, c.a, c.b)
			}
		})
	}
}

func TestKernelsCommutative(t *testing.T) {
	a := seqRange(1, 200)
	b := seqRange(100, 300)
	for name, fn := range allKernels() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			wantAB := naiveIntersect(a, b)

			eAB := visitor.NewEnsurer(wantAB)
			fn(a, b, eAB)
			if !eAB.Ok() {
				t.Fatalf("%s(a,b): %v", name, eAB.Mismatches())
			}

			eBA := visitor.NewEnsurer(wantAB)
			fn(b, a, eBA)
			if !eBA.Ok() {
				t.Fatalf("%s(b,a): %v", name, eBA.Mismatches())
			}
		})
	}
}

func TestKernelsIdempotentOnSelfIntersection(t *testing.T) {
	a := seqRange(1, 64)
	for name, fn := range allKernels() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			run(t, name, fn, a, a)
		})
	}
}

func TestKernelsBoundedByMinCardinality(t *testing.T) {
	a := seqRange(1, 10)
	b := seqRange(1, 1000)
	for name, fn := range allKernels() {
		fn := fn
		t.Run(name, func(t *testing.T) {
			c := &visitor.Counter{}
			fn(a, b, c)
			if c.Count() > len(a) {
				t.Errorf("%s: |intersection|=%d exceeds min(|a|,|b|)=%d", name, c.Count(), len(a))
			}
		})
	}
}

func TestGallopingInplace(t *testing.T) {
	small := []int32{2, 4, 6, 8, 10}
	large := seqRange(1, 20)
	n := GallopingInplace(small, large)
	want := []int32{2, 4, 6, 8, 10}
	if n != len(want) {
		t.Fatalf("GallopingInplace: got length %d, want %d", n, len(want))
	}
	for i, x := range want {
		if small[i] != x {
			t.Errorf("GallopingInplace: small[%d] = %d, want %d", i, small[i], x)
		}
	}
}

func TestDispatchNamed(t *testing.T) {
	if _, ok := Named("naive_merge"); !ok {
		t.Error(`Named("naive_merge") should always be present`)
	}
	if _, ok := Named("not_a_real_kernel"); ok {
		t.Error(`Named("not_a_real_kernel") should be absent`)
	}
	for _, n := range Names() {
		if _, ok := Named(n); !ok {
			t.Errorf("Names() listed %q but Named(%q) reports absent", n, n)
		}
	}
}

func seqRange(lo, hi int32) []int32 {
	out := make([]int32, 0, hi-lo)
	for x := lo; x < hi; x++ {
		out = append(out, x)
	}
	return out
}
