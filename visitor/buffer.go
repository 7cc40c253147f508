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

package visitor

import "github.com/setops-go/setops/simd"

// BufferWriter is an unbounded visitor: it owns a growable slice and
// reallocates geometrically (via Go's append) as elements are visited.
type BufferWriter struct {
	data []int32
}

// NewBufferWriter returns an empty BufferWriter with capacity hint cap.
func NewBufferWriter(capHint int) *BufferWriter {
	return &BufferWriter{data: make([]int32, 0, capHint)}
}

func (w *BufferWriter) Visit(x int32) {
	w.data = append(w.data, x)
}

func (w *BufferWriter) VisitVector4(v simd.Vec4, mask simd.Mask4) {
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.data = append(w.data, v.At(i))
		}
	}
}

func (w *BufferWriter) VisitVector8(v simd.Vec8, mask simd.Mask8) {
	for i := 0; i < 8; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.data = append(w.data, v.At(i))
		}
	}
}

func (w *BufferWriter) VisitVector16(v simd.Vec16, mask simd.Mask16) {
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.data = append(w.data, v.At(i))
		}
	}
}

// ClearFrom truncates the buffer to length n. Used by in-place k-ary
// composition to undo a speculative write.
func (w *BufferWriter) ClearFrom(n int) {
	w.data = w.data[:n]
}

// Len returns the number of elements visited so far.
func (w *BufferWriter) Len() int { return len(w.data) }

// Data returns the visited elements. The returned slice aliases the
// writer's internal storage and must not be retained across further Visit
// calls.
func (w *BufferWriter) Data() []int32 { return w.data }
