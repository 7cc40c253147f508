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

// Package config decodes the benchmark harness's experiment/dataset
// configuration file. The file is written as YAML but the in-memory
// structs carry `json` tags: sigs.k8s.io/yaml round-trips YAML through the
// JSON struct tag machinery, the same convention SnellerInc-sneller's
// config loaders use.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"sigs.k8s.io/yaml"
)

// Vary names the axis a dataset sweeps while holding the others fixed.
type Vary string

const (
	VaryDensity     Vary = "Density"
	VarySelectivity Vary = "Selectivity"
	VarySize        Vary = "Size"
	VarySkew        Vary = "Skew"
)

// Dataset describes one swept axis: generate pairs at every x from From to
// To (inclusive, step chosen by the generator) while varying Vary and
// holding the remaining parameters at their defaults.
type Dataset struct {
	Name string  `json:"name"`
	Vary Vary    `json:"vary"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Experiment names one dataset and the kernels to benchmark against it.
type Experiment struct {
	Name       string   `json:"name"`
	Dataset    string   `json:"dataset"`
	Algorithms []string `json:"algorithms"`
}

// Experiments is the top-level decoded document.
type Experiments struct {
	Datasets    []Dataset    `json:"datasets"`
	Experiments []Experiment `json:"experiments"`
}

// NameKnown reports whether name is a recognized kernel/algorithm name, per
// the provided name table (cmd/setbench checks against intersect.Names()).
// Kept as caller-supplied sets rather than importing intersect/fesia
// directly, so config has no dependency on the packages it validates
// against.
type NameKnown func(name string) bool

// LoadExperiments decodes the YAML document at path and drops any
// experiment referencing an unknown algorithm name, logging a diagnostic
// instead of failing the whole file — per spec.md §6.2, "Unknown algorithm
// names in the algorithms list cause the experiment run to be skipped with
// a diagnostic."
func LoadExperiments(path string, known NameKnown) (*Experiments, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var doc Experiments
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	kept := doc.Experiments[:0]
	for _, exp := range doc.Experiments {
		if unknown := firstUnknown(exp.Algorithms, known); unknown != "" {
			slog.Warn("skipping experiment with unknown algorithm",
				"experiment", exp.Name, "algorithm", unknown)
			continue
		}
		kept = append(kept, exp)
	}
	doc.Experiments = kept

	return &doc, nil
}

func firstUnknown(algorithms []string, known NameKnown) string {
	for _, name := range algorithms {
		if !known(name) {
			return name
		}
	}
	return ""
}

// DatasetByName looks up a dataset definition by name, for an experiment to
// resolve its Dataset field against.
func (e *Experiments) DatasetByName(name string) (Dataset, bool) {
	for _, d := range e.Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}
