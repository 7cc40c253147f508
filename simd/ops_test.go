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

package simd

import "testing"

func TestLoadAndAt(t *testing.T) {
	src := []int32{1, 2, 3, 4, 5, 6, 7, 8}
	v4 := Load4(src)
	for i := 0; i < 4; i++ {
		if v4.At(i) != src[i] {
			t.Errorf("Load4.At(%d) = %d, want %d", i, v4.At(i), src[i])
		}
	}
	v8 := Load8(src)
	for i := 0; i < 8; i++ {
		if v8.At(i) != src[i] {
			t.Errorf("Load8.At(%d) = %d, want %d", i, v8.At(i), src[i])
		}
	}
}

func TestRotateLeft4(t *testing.T) {
	v := Load4([]int32{10, 20, 30, 40})
	r := RotateLeft4(v, 1)
	want := [4]int32{20, 30, 40, 10}
	if r.Array() != want {
		t.Errorf("RotateLeft4(v,1) = %v, want %v", r.Array(), want)
	}
	if RotateLeft4(v, 0).Array() != v.Array() {
		t.Error("RotateLeft4(v,0) must be identity")
	}
	if RotateLeft4(v, 4).Array() != v.Array() {
		t.Error("RotateLeft4(v,4) must wrap back to identity")
	}
}

func TestRotateLeft16FullCycle(t *testing.T) {
	src := make([]int32, 16)
	for i := range src {
		src[i] = int32(i)
	}
	v := Load16(src)
	if RotateLeft16(v, 16).Array() != v.Array() {
		t.Error("RotateLeft16(v,16) must wrap back to identity")
	}
}

func TestEqual4(t *testing.T) {
	a := Load4([]int32{1, 2, 3, 4})
	b := Load4([]int32{1, 0, 3, 0})
	mask := Equal4(a, b)
	want := Mask4(0b0101)
	if mask != want {
		t.Errorf("Equal4 = %04b, want %04b", mask, want)
	}
}

func TestEqual8(t *testing.T) {
	a := Load8([]int32{1, 2, 3, 4, 5, 6, 7, 8})
	b := Load8([]int32{1, 2, 0, 0, 5, 6, 0, 0})
	mask := Equal8(a, b)
	want := Mask8(0b00110011)
	if mask != want {
		t.Errorf("Equal8 = %08b, want %08b", mask, want)
	}
}

func TestSplatAndEqual16(t *testing.T) {
	src := make([]int32, 16)
	for i := range src {
		src[i] = int32(i % 3)
	}
	v := Load16(src)
	pivot := Splat16(1)
	mask := Equal16(v, pivot)
	var want Mask16
	for i, x := range src {
		if x == 1 {
			want |= 1 << uint(i)
		}
	}
	if mask != want {
		t.Errorf("Equal16(v, Splat16(1)) = %016b, want %016b", mask, want)
	}
}

func TestBroadcastLane4(t *testing.T) {
	v := Load4([]int32{7, 8, 9, 10})
	bc := BroadcastLane4(v, 2)
	want := [4]int32{9, 9, 9, 9}
	if bc.Array() != want {
		t.Errorf("BroadcastLane4(v,2) = %v, want %v", bc.Array(), want)
	}
}

func TestCompressStore4(t *testing.T) {
	v := Load4([]int32{1, 2, 3, 4})
	dst := make([]int32, 4)
	n := CompressStore4(v, Mask4(0b1010), dst)
	if n != 2 {
		t.Fatalf("CompressStore4 returned n=%d, want 2", n)
	}
	want := []int32{2, 4}
	for i, x := range want {
		if dst[i] != x {
			t.Errorf("dst[%d] = %d, want %d", i, dst[i], x)
		}
	}
}

func TestCompressStoreAscendingLaneOrder16(t *testing.T) {
	src := make([]int32, 16)
	for i := range src {
		src[i] = int32(i)
	}
	v := Load16(src)
	mask := Mask16(0)
	for _, lane := range []int{15, 2, 9, 0} {
		mask |= 1 << uint(lane)
	}
	dst := make([]int32, 16)
	n := CompressStore16(v, mask, dst)
	want := []int32{0, 2, 9, 15}
	if n != len(want) {
		t.Fatalf("CompressStore16 returned n=%d, want %d", n, len(want))
	}
	for i, x := range want {
		if dst[i] != x {
			t.Errorf("dst[%d] = %d, want %d (compress-store must emit in ascending lane order)", i, dst[i], x)
		}
	}
}

func TestNextSetBit(t *testing.T) {
	w := uint16(0b0010_1001)
	var got []int
	for w != 0 {
		var i int
		i, w = NextSetBit(w)
		got = append(got, i)
	}
	want := []int{0, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("NextSetBit sequence = %v, want %v", got, want)
	}
	for i, x := range want {
		if got[i] != x {
			t.Errorf("NextSetBit sequence[%d] = %d, want %d", i, got[i], x)
		}
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(uint32(0)) {
		t.Error("IsZero(0) should be true")
	}
	if IsZero(uint32(1)) {
		t.Error("IsZero(1) should be false")
	}
}

func TestCurrentLevelConsistentWithCapabilityGates(t *testing.T) {
	lvl := CurrentLevel()
	if lvl >= LevelSSE && !Has4() {
		t.Errorf("level %s should imply Has4()", lvl)
	}
	if lvl >= LevelAVX2 && !Has8() {
		t.Errorf("level %s should imply Has8()", lvl)
	}
	if lvl >= LevelAVX512 && !Has16() {
		t.Errorf("level %s should imply Has16()", lvl)
	}
	if lvl >= LevelAVX512CD && !HasConflictDetection() {
		t.Errorf("level %s should imply HasConflictDetection()", lvl)
	}
	if CurrentName() != lvl.String() {
		t.Errorf("CurrentName() = %q, want %q", CurrentName(), lvl.String())
	}
}
