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
	"context"
	"errors"
	"testing"

	"github.com/setops-go/setops/intersect"
	"github.com/setops-go/setops/visitor"
)

func TestSvs(t *testing.T) {
	sets := [][]int32{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 8, 9},
	}
	out := make([]int32, len(sets[0]))
	n := Svs(sets, out)
	want := []int32{3, 4, 5}
	if n != len(want) {
		t.Fatalf("Svs count = %d, want %d", n, len(want))
	}
	for i, x := range want {
		if out[i] != x {
			t.Errorf("out[%d] = %d, want %d", i, out[i], x)
		}
	}
}

func TestSvsTwoSetsEqualsGalloping(t *testing.T) {
	a := []int32{1, 3, 5, 7, 9}
	b := []int32{1, 2, 3, 4, 5}
	out := make([]int32, len(a))
	n := Svs([][]int32{a, b}, out)

	e := visitor.NewEnsurer([]int32{1, 3, 5})
	intersect.Galloping(b, a, e)
	if !e.Ok() {
		t.Fatalf("reference galloping computation mismatched: %v", e.Mismatches())
	}
	if n != 3 || out[0] != 1 || out[1] != 3 || out[2] != 5 {
		t.Errorf("Svs(a,b) = %v (n=%d), want [1 3 5]", out[:n], n)
	}
}

func TestAsSvs(t *testing.T) {
	sets := [][]int32{
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 8, 9},
	}
	out0 := make([]int32, len(sets[0]))
	out1 := make([]int32, len(sets[0]))

	count, which := AsSvs(sets, out0, out1, intersect.ShufflingSSE)
	var got []int32
	if which == 0 {
		got = out0[:count]
	} else {
		got = out1[:count]
	}
	want := []int32{3, 4, 5}
	if count != len(want) {
		t.Fatalf("AsSvs count = %d, want %d", count, len(want))
	}
	for i, x := range want {
		if got[i] != x {
			t.Errorf("got[%d] = %d, want %d", i, got[i], x)
		}
	}
}

func TestAsSvsBufferParityIndependence(t *testing.T) {
	// Property: as_svs yields the same multiset regardless of how many sets
	// precede it (i.e. regardless of which physical buffer ends up final).
	kernel := intersect.BranchlessMerge
	sets3 := [][]int32{
		{1, 2, 3, 4, 5, 6},
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 6, 7, 8},
	}
	sets4 := append(append([][]int32{}, sets3...), []int32{3, 4, 5, 6, 100})

	out0 := make([]int32, 6)
	out1 := make([]int32, 6)
	n3, w3 := AsSvs(sets3, out0, out1, kernel)
	var got3 []int32
	if w3 == 0 {
		got3 = append([]int32{}, out0[:n3]...)
	} else {
		got3 = append([]int32{}, out1[:n3]...)
	}

	out0b := make([]int32, 6)
	out1b := make([]int32, 6)
	n4, w4 := AsSvs(sets4, out0b, out1b, kernel)
	var got4 []int32
	if w4 == 0 {
		got4 = out0b[:n4]
	} else {
		got4 = out1b[:n4]
	}

	want3 := []int32{3, 4, 5, 6}
	want4 := []int32{3, 4, 5, 6}
	if !int32SliceEqual(got3, want3) {
		t.Errorf("3-set AsSvs = %v, want %v", got3, want3)
	}
	if !int32SliceEqual(got4, want4) {
		t.Errorf("4-set AsSvs = %v, want %v", got4, want4)
	}
}

func TestAdaptive(t *testing.T) {
	sets := [][]int32{
		{3, 4, 5},
		{1, 2, 3, 4, 5},
		{2, 3, 4, 5, 6, 7},
		{3, 4, 5, 8, 9},
	}
	w := visitor.NewBufferWriter(0)
	Adaptive(sets, w)
	want := []int32{3, 4, 5}
	if !int32SliceEqual(w.Data(), want) {
		t.Errorf("Adaptive = %v, want %v", w.Data(), want)
	}
}

func TestSmallAdaptiveMatchesAdaptive(t *testing.T) {
	sets := [][]int32{
		{10, 20},
		{5, 10, 15, 20, 25},
		{1, 10, 20, 30, 40, 50},
	}
	wa := visitor.NewBufferWriter(0)
	Adaptive(sets, wa)
	ws := visitor.NewBufferWriter(0)
	SmallAdaptive(sets, ws)
	if !int32SliceEqual(wa.Data(), ws.Data()) {
		t.Errorf("SmallAdaptive = %v, want %v (same as Adaptive)", ws.Data(), wa.Data())
	}
}

func TestAdaptiveEmptyIntersection(t *testing.T) {
	sets := [][]int32{
		{1, 3, 5},
		{2, 4, 6},
	}
	w := visitor.NewBufferWriter(0)
	Adaptive(sets, w)
	if w.Len() != 0 {
		t.Errorf("Adaptive on disjoint sets = %v, want empty", w.Data())
	}
}

func TestRunParallelSuccess(t *testing.T) {
	var results [3]int
	jobs := make([]Job, 3)
	for i := range jobs {
		i := i
		jobs[i] = func(ctx context.Context) error {
			results[i] = i * i
			return nil
		}
	}
	if err := RunParallel(context.Background(), jobs); err != nil {
		t.Fatalf("RunParallel returned error: %v", err)
	}
	for i, r := range results {
		if r != i*i {
			t.Errorf("results[%d] = %d, want %d", i, r, i*i)
		}
	}
}

func TestRunParallelPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
	}
	err := RunParallel(context.Background(), jobs)
	if !errors.Is(err, boom) {
		t.Errorf("RunParallel error = %v, want %v", err, boom)
	}
}

func int32SliceEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
