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

// Command setplot is the plotting-front-end collaborator described in
// spec.md §6.4. The actual chart rendering is explicitly out of scope
// (spec.md §1's Non-goals); this emits one CSV file per experiment into
// <plots-dir>, a minimal but real boundary a separate plotting tool can
// consume, plus a --list-algorithms probe for quickly inspecting a results
// file without loading it into the benchmark runner.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/setops-go/setops/config"
)

var listAlgorithms bool

func main() {
	root := &cobra.Command{
		Use:   "setplot <experiment-file> <results-file> <plots-dir>",
		Short: "Render benchmark results into per-experiment CSV files",
		Args:  cobra.ExactArgs(3),
		RunE:  runPlot,
	}
	root.Flags().BoolVar(&listAlgorithms, "list-algorithms", false, "print every algorithm name present in the results file and exit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlot(_ *cobra.Command, args []string) error {
	experimentFile, resultsFile, plotsDir := args[0], args[1], args[2]

	if listAlgorithms {
		names, err := config.ListAlgorithms(resultsFile)
		if err != nil {
			return fmt.Errorf("setplot: %w", err)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	}

	experiments, err := config.LoadExperiments(experimentFile, func(string) bool { return true })
	if err != nil {
		return fmt.Errorf("setplot: %w", err)
	}

	results, err := config.ReadResults(resultsFile)
	if err != nil {
		return fmt.Errorf("setplot: %w", err)
	}

	if err := os.MkdirAll(plotsDir, 0o755); err != nil {
		return fmt.Errorf("setplot: creating %q: %w", plotsDir, err)
	}

	for _, exp := range experiments.Experiments {
		if err := writeExperimentCSV(plotsDir, exp, results); err != nil {
			return fmt.Errorf("setplot: experiment %q: %w", exp.Name, err)
		}
	}
	return nil
}

// writeExperimentCSV writes <plots-dir>/<experiment-name>.csv with one row
// per (x, algorithm, aggregated-time-sample) triple, long-form so a
// separate plotting tool can pivot however it likes.
func writeExperimentCSV(plotsDir string, exp config.Experiment, results *config.Results) error {
	path := filepath.Join(plotsDir, exp.Name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"algorithm", "x", "time_ns"}); err != nil {
		return err
	}

	perAlgo := results.Data[exp.Dataset]
	for _, algo := range exp.Algorithms {
		points := perAlgo[algo]
		for _, p := range points {
			for _, ns := range p.Times {
				row := []string{
					algo,
					strconv.FormatFloat(p.X, 'g', -1, 64),
					strconv.FormatInt(ns, 10),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	return w.Error()
}
