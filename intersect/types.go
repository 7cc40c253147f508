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

// Package intersect implements the sorted-set two-set intersection kernels:
// scalar merge variants, galloping search, and SIMD lane-parallel matchers.
// Every visitor-driven kernel shares the shape (A, B sorted, V visitor) -> ();
// none of them mutate their inputs, allocate, or retain state across calls.
// GallopingInplace, used by k-ary SvS, instead writes its result into its
// first argument and returns the new length.
package intersect

import "github.com/setops-go/setops/visitor"

// Intersect2 is the shape every 2-set kernel in this package satisfies.
// All concrete visitors (BufferWriter, SliceWriter, Counter, Ensurer)
// implement visitor.FullVisitor, so a single function shape serves scalar
// and SIMD kernels alike — scalar kernels simply never call the
// VisitVectorN methods.
type Intersect2 func(a, b []int32, v visitor.FullVisitor)

// IntersectK is the shape k-ary composition entry points satisfy.
type IntersectK func(sets [][]int32, v visitor.FullVisitor)
