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

package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"
)

// XPoint is one measured x-value's timing series for a single algorithm:
// Times holds one nanosecond latency per repetition (after aggregation
// across rounds, per --aggregation).
type XPoint struct {
	X     float64 `json:"x"`
	Times []int64 `json:"times"`
}

// Results is keyed by dataset name, then by algorithm name, per spec.md
// §6.3: "Keyed by dataset name -> per-algorithm list of {x, times[]}." Add
// is safe for concurrent use, since cmd/setbench fans timing jobs out
// across goroutines via kary.RunParallel and every job reports into the
// same Results value.
type Results struct {
	RunID string `json:"run_id"`
	GOHW  string `json:"go_hw"`

	mu   sync.Mutex
	Data map[string]map[string][]XPoint `json:"data"`
}

// NewResults starts an empty result set tagged with a fresh run id and the
// running binary's detected SIMD dispatch level (hw string), so a results
// file can be correlated back to the machine it was captured on.
func NewResults(hw string) *Results {
	return &Results{
		RunID: uuid.NewString(),
		GOHW:  hw,
		Data:  make(map[string]map[string][]XPoint),
	}
}

// Add appends one measured point for dataset/algorithm.
func (r *Results) Add(dataset, algorithm string, point XPoint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	perAlgo, ok := r.Data[dataset]
	if !ok {
		perAlgo = make(map[string][]XPoint)
		r.Data[dataset] = perAlgo
	}
	perAlgo[algorithm] = append(perAlgo[algorithm], point)
}

// WriteResults JSON-encodes r and writes it zstd-compressed to path
// (typically named results.json.zst), matching SnellerInc-sneller's use of
// github.com/klauspost/compress/zstd for on-disk artifact compression.
func WriteResults(path string, r *Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: creating %q: %w", path, err)
	}
	defer f.Close()

	zw, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("config: starting zstd writer: %w", err)
	}
	defer zw.Close()

	enc := json.NewEncoder(zw)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("config: encoding results: %w", err)
	}
	return nil
}

// ReadResults decodes a results.json.zst file written by WriteResults.
func ReadResults(path string) (*Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %q: %w", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: starting zstd reader: %w", err)
	}
	defer zr.Close()

	var r Results
	if err := json.NewDecoder(zr).Decode(&r); err != nil {
		return nil, fmt.Errorf("config: decoding results: %w", err)
	}
	return &r, nil
}

// ListAlgorithms decompresses path and probes it for every distinct
// algorithm name appearing under any dataset, without a full unmarshal —
// the gjson-based "quick field-probing" collaborator spec.md §4.7
// describes for `setplot --list-algorithms`.
func ListAlgorithms(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: opening %q: %w", path, err)
	}
	defer f.Close()

	zr, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: starting zstd reader: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	seen := make(map[string]bool)
	var names []string
	gjson.GetBytes(raw, "data").ForEach(func(_, dataset gjson.Result) bool {
		dataset.ForEach(func(algo, _ gjson.Result) bool {
			name := algo.String()
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			return true
		})
		return true
	})
	return names, nil
}
