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

package kary

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Job is one independent k-ary intersection task, e.g. one dataset point
// in a benchmark sweep. Jobs must not share mutable state: each is
// responsible for its own sets and output.
type Job func(ctx context.Context) error

// RunParallel runs jobs concurrently and returns the first error
// encountered, cancelling ctx for the remaining jobs (mirroring
// errgroup.WithContext's standard fail-fast behavior). svs and as_svs
// themselves stay synchronous and single-threaded; this only parallelizes
// across independent harness-level jobs, never within one composition.
func RunParallel(ctx context.Context, jobs []Job) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		job := job
		g.Go(func() error {
			return job(gctx)
		})
	}
	return g.Wait()
}
