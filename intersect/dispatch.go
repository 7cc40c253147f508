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

import "github.com/setops-go/setops/simd"

// Named is the closed set of kernels addressable by name, e.g. from a YAML
// experiment config or a benchmark CLI flag. The table is built fresh on
// every call to Named rather than once at init, since simd.CurrentLevel is
// fixed at process start but callers (tests, in particular) may want to see
// the table as it would look at a given detected level.
func Named(name string) (Intersect2, bool) {
	table := dispatchTable()
	fn, ok := table[name]
	return fn, ok
}

// Names returns every kernel name available at the current SIMD level, in a
// stable order, for use by CLIs that need to list what they can run.
func Names() []string {
	table := dispatchTable()
	names := make([]string, 0, len(table))
	for _, n := range kernelOrder {
		if _, ok := table[n]; ok {
			names = append(names, n)
		}
	}
	return names
}

// kernelOrder fixes the iteration/listing order; Names filters it down to
// whatever dispatchTable actually populated for the current SIMD level.
var kernelOrder = []string{
	"naive_merge",
	"branchless_merge",
	"bmiss_scalar_3x",
	"bmiss_scalar_4x",
	"galloping",
	"baezayates",
	"shuffling_sse",
	"shuffling_avx2",
	"shuffling_avx512",
	"broadcast_sse",
	"bmiss_sse",
	"bmiss_sse_sttni",
	"qfilter",
	"galloping_simd_sse",
	"galloping_simd_avx2",
	"galloping_simd_avx512",
	"vp2intersect_emulation",
	"conflict_intersect",
}

// dispatchTable builds the name->kernel map for the current process. Kernels
// requiring a lane width the running CPU (or GOEXPERIMENT=simd build)
// doesn't have are simply absent rather than mapped to an error: Named
// reports "unknown" for them exactly as it would for a typo.
func dispatchTable() map[string]Intersect2 {
	t := map[string]Intersect2{
		"naive_merge":      NaiveMerge,
		"branchless_merge": BranchlessMerge,
		"bmiss_scalar_3x":  BmissScalar3x,
		"bmiss_scalar_4x":  BmissScalar4x,
		"galloping":        Galloping,
		"baezayates":       BaezaYates,
	}

	if simd.Has4() {
		t["shuffling_sse"] = ShufflingSSE
		t["broadcast_sse"] = BroadcastSSE
		t["bmiss_sse"] = BmissSSE
		t["bmiss_sse_sttni"] = BmissSSESTTNI
		t["qfilter"] = QFilter
		t["galloping_simd_sse"] = GallopingSIMDSSE
	}
	if simd.Has8() {
		t["shuffling_avx2"] = ShufflingAVX2
		t["galloping_simd_avx2"] = GallopingSIMDAVX2
	}
	if simd.Has16() {
		t["shuffling_avx512"] = ShufflingAVX512
		t["galloping_simd_avx512"] = GallopingSIMDAVX512
		t["vp2intersect_emulation"] = Vp2IntersectEmulation
	}
	if simd.HasConflictDetection() {
		t["conflict_intersect"] = ConflictIntersect
	}

	return t
}
