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

// Counter discards visited elements and keeps a running total. Useful for
// benchmarking kernels where only |A ∩ B| is wanted, without paying for an
// output buffer.
type Counter struct {
	count int
}

func (c *Counter) Visit(int32) { c.count++ }

func (c *Counter) VisitVector4(_ simd.Vec4, mask simd.Mask4) {
	c.count += popcount8(uint8(mask))
}

func (c *Counter) VisitVector8(_ simd.Vec8, mask simd.Mask8) {
	c.count += popcount8(uint8(mask))
}

func (c *Counter) VisitVector16(_ simd.Vec16, mask simd.Mask16) {
	c.count += popcount16(uint16(mask))
}

// Count returns the running total.
func (c *Counter) Count() int { return c.count }

func popcount8(x uint8) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

func popcount16(x uint16) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}
