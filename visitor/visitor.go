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

// Package visitor defines the output-sink abstraction intersection kernels
// write matching elements through. It decouples how a kernel finds a match
// (scalar one-by-one, or a SIMD vector plus a lane mask) from how the
// caller wants matches consumed (appended to a buffer, counted, written
// into a fixed slice, or checked against a reference sequence).
package visitor

import "github.com/setops-go/setops/simd"

// Visitor is the scalar capability tier: accept one matching element at a
// time, in ascending order.
type Visitor interface {
	Visit(x int32)
}

// SimdVisitor4 accepts a 4-lane vector plus a bitmask identifying which
// lanes matched; implementations must emit lanes in ascending lane index.
type SimdVisitor4 interface {
	Visitor
	VisitVector4(v simd.Vec4, mask simd.Mask4)
}

// SimdVisitor8 is SimdVisitor4 for 8-lane vectors.
type SimdVisitor8 interface {
	Visitor
	VisitVector8(v simd.Vec8, mask simd.Mask8)
}

// SimdVisitor16 is SimdVisitor4 for 16-lane vectors.
type SimdVisitor16 interface {
	Visitor
	VisitVector16(v simd.Vec16, mask simd.Mask16)
}

// FullVisitor is satisfied by any visitor that supports every capability
// tier. FESIA's similar-size intersection requires this, since its block
// scan may dispatch to kernels of any width.
type FullVisitor interface {
	SimdVisitor4
	SimdVisitor8
	SimdVisitor16
}

// Clearable lets a k-ary composition undo speculative writes: ClearFrom(n)
// truncates the output back to length n. Not every visitor needs to
// support this (a Counter has nothing to undo), so it is a separate,
// optional interface rather than part of Visitor.
type Clearable interface {
	ClearFrom(n int)
}
