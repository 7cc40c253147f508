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

// Ensurer is a test oracle: it verifies that emitted elements equal a
// reference sequence, in order, without allocating an output buffer of its
// own. Kernels under test are driven through an Ensurer instead of a
// BufferWriter so a mismatch is reported at the exact offending element.
type Ensurer struct {
	want      []int32
	pos       int
	mismatch  []string
	extraVals int
}

// NewEnsurer builds an Ensurer that expects exactly the sequence want, in
// ascending order, matching the kernel's emission order invariant.
func NewEnsurer(want []int32) *Ensurer {
	return &Ensurer{want: want}
}

func (e *Ensurer) record(x int32) {
	if e.pos >= len(e.want) {
		e.mismatch = append(e.mismatch, fmt.Sprintf("unexpected extra element %d at position %d", x, e.pos))
		e.extraVals++
		e.pos++
		return
	}
	if e.want[e.pos] != x {
		e.mismatch = append(e.mismatch, fmt.Sprintf("position %d: got %d, want %d", e.pos, x, e.want[e.pos]))
	}
	e.pos++
}

func (e *Ensurer) Visit(x int32) { e.record(x) }

func (e *Ensurer) VisitVector4(v simd.Vec4, mask simd.Mask4) {
	for i := 0; i < 4; i++ {
		if mask&(1<<uint(i)) != 0 {
			e.record(v.At(i))
		}
	}
}

func (e *Ensurer) VisitVector8(v simd.Vec8, mask simd.Mask8) {
	for i := 0; i < 8; i++ {
		if mask&(1<<uint(i)) != 0 {
			e.record(v.At(i))
		}
	}
}

func (e *Ensurer) VisitVector16(v simd.Vec16, mask simd.Mask16) {
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) != 0 {
			e.record(v.At(i))
		}
	}
}

// Ok reports whether every emitted element matched the reference sequence
// in order and the full reference sequence was consumed.
func (e *Ensurer) Ok() bool {
	return len(e.mismatch) == 0 && e.pos == len(e.want)
}

// Mismatches returns human-readable descriptions of every divergence from
// the reference sequence, for use in test failure messages.
func (e *Ensurer) Mismatches() []string {
	if e.pos < len(e.want) {
		missing := e.want[e.pos:]
		return append(append([]string{}, e.mismatch...),
			fmt.Sprintf("missing %d trailing element(s): %v", len(missing), missing))
	}
	return e.mismatch
}
