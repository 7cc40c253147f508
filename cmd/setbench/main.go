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

// Command setbench is the benchmark runner collaborator described in
// spec.md §6.4: it reads an experiment config and a datasets directory,
// times every named kernel against every generated (A, B) pair, and writes
// a compressed results document.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/setops-go/setops/config"
	"github.com/setops-go/setops/intersect"
	"github.com/setops-go/setops/kary"
	"github.com/setops-go/setops/simd"
	"github.com/setops-go/setops/visitor"
)

var (
	rounds      int
	aggregation string
)

func main() {
	root := &cobra.Command{
		Use:   "setbench <experiment-file> <datasets-dir> <results-file> <warmup-rounds>",
		Short: "Run set-intersection kernels against generated datasets and record timings",
		Args:  cobra.ExactArgs(4),
		RunE:  runBench,
	}
	root.Flags().IntVar(&rounds, "rounds", 1, "number of timed rounds per repetition")
	root.Flags().StringVar(&aggregation, "aggregation", "min", "round aggregation strategy: min, median, or mean")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBench(_ *cobra.Command, args []string) error {
	experimentFile, datasetsDir, resultsFile, warmupArg := args[0], args[1], args[2], args[3]

	warmupRounds, err := strconv.Atoi(warmupArg)
	if err != nil {
		return fmt.Errorf("setbench: invalid warmup-rounds %q: %w", warmupArg, err)
	}

	experiments, err := config.LoadExperiments(experimentFile, isKnownName)
	if err != nil {
		return fmt.Errorf("setbench: %w", err)
	}

	results := config.NewResults(simd.CurrentName())

	for _, exp := range experiments.Experiments {
		ds, ok := experiments.DatasetByName(exp.Dataset)
		if !ok {
			slog.Warn("skipping experiment referencing unknown dataset", "experiment", exp.Name, "dataset", exp.Dataset)
			continue
		}
		if err := runExperiment(datasetsDir, results, ds, exp, warmupRounds); err != nil {
			return fmt.Errorf("setbench: experiment %q: %w", exp.Name, err)
		}
	}

	if err := config.WriteResults(resultsFile, results); err != nil {
		return fmt.Errorf("setbench: %w", err)
	}
	return nil
}

func runExperiment(datasetsDir string, results *config.Results, ds config.Dataset, exp config.Experiment, warmupRounds int) error {
	xs, err := config.XPoints(datasetsDir, ds.Name)
	if err != nil {
		return err
	}

	jobs := make([]kary.Job, 0, len(xs)*len(exp.Algorithms))
	for _, x := range xs {
		x := x
		files, err := config.PairFiles(datasetsDir, ds.Name, x)
		if err != nil {
			return err
		}
		for _, name := range exp.Algorithms {
			name := name
			kernel, ok := intersect.Named(name)
			if !ok {
				slog.Warn("skipping algorithm absent from current dispatch table", "algorithm", name)
				continue
			}
			jobs = append(jobs, func(ctx context.Context) error {
				times, err := timeKernel(files, kernel, warmupRounds)
				if err != nil {
					return err
				}
				results.Add(exp.Dataset, name, config.XPoint{X: x, Times: times})
				return nil
			})
		}
	}

	return kary.RunParallel(context.Background(), jobs)
}

// timeKernel runs kernel warmupRounds times untimed on each repetition
// file, then --rounds timed runs whose samples are aggregated down to one
// nanosecond figure per file via --aggregation.
func timeKernel(files []string, kernel intersect.Intersect2, warmupRounds int) ([]int64, error) {
	agg := config.Aggregation(aggregation)
	out := make([]int64, 0, len(files))

	for _, path := range files {
		pair, err := config.LoadPairFile(path)
		if err != nil {
			return nil, err
		}

		for i := 0; i < warmupRounds; i++ {
			kernel(pair.A, pair.B, &visitor.Counter{})
		}

		samples := make([]int64, 0, rounds)
		for i := 0; i < rounds; i++ {
			c := &visitor.Counter{}
			start := time.Now()
			kernel(pair.A, pair.B, c)
			samples = append(samples, time.Since(start).Nanoseconds())
		}

		aggregated, err := config.Aggregate(agg, samples)
		if err != nil {
			return nil, err
		}
		out = append(out, aggregated)
	}

	return out, nil
}

func isKnownName(name string) bool {
	for _, n := range intersect.Names() {
		if n == name {
			return true
		}
	}
	return false
}
