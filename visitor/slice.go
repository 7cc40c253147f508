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

import (
	"fmt"

	"github.com/setops-go/setops/simd"
)

// SliceWriter writes into a caller-owned fixed-capacity region. Writing
// beyond capacity is a caller-contract violation (the caller is expected to
// pre-size to min(|A|,|B|) for 2-set kernels, or |A0| for k-ary) and panics
// rather than silently dropping data.
type SliceWriter struct {
	dst []int32
	n   int
}

// NewSliceWriter wraps dst for writing. len(dst) is the writer's capacity.
func NewSliceWriter(dst []int32) *SliceWriter {
	return &SliceWriter{dst: dst}
}

// FromSlice is an alias for NewSliceWriter matching the teacher's Rust
// `SliceWriter::from(&mut *out)` constructor name.
func FromSlice(dst []int32) *SliceWriter {
	return NewSliceWriter(dst)
}

func (w *SliceWriter) push(x int32) {
	if w.n >= len(w.dst) {
		panic(fmt.Sprintf("visitor: SliceWriter overflow: capacity %d exceeded", len(w.dst)))
	}
	w.dst[w.n] = x
	w.n++
}

func (w *SliceWriter) Visit(x int32) { w.push(x) }

func (w *SliceWriter) VisitVector4(v simd.Vec4, mask simd.Mask4) {
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.push(v.At(i))
		}
	}
}

func (w *SliceWriter) VisitVector8(v simd.Vec8, mask simd.Mask8) {
	for i := 0; i < 8; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.push(v.At(i))
		}
	}
}

func (w *SliceWriter) VisitVector16(v simd.Vec16, mask simd.Mask16) {
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) != 0 {
			w.push(v.At(i))
		}
	}
}

// ClearFrom truncates the writer's logical length to n.
func (w *SliceWriter) ClearFrom(n int) { w.n = n }

// Len returns the number of elements written so far.
func (w *SliceWriter) Len() int { return w.n }

// Written returns the written prefix dst[:n].
func (w *SliceWriter) Written() []int32 { return w.dst[:w.n] }
