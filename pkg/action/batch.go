/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package action

import (
	"context"
	"runtime"
	"sync"
)

// Request is one resolution of a batch.
type Request struct {
	// Name labels the request in logs and responses, e.g. a manifest path.
	Name     string
	RunList  RunList
	Baseline Baseline
}

// Response is the outcome of one Request.
type Response struct {
	Name   string
	Result *Result
	Err    error
}

// ResolveAll resolves independent requests concurrently over the graph of
// cfg with the default Resolve settings. See Resolve.RunAll.
func ResolveAll(ctx context.Context, cfg *Configuration, requests []Request, workers int) []Response {
	return NewResolve(cfg).RunAll(ctx, requests, workers)
}

// RunAll resolves requests with at most workers concurrent searches, zero
// meaning one per CPU. Responses come back in request order. Requests with
// the same digest are solved once and share their response.
func (r *Resolve) RunAll(ctx context.Context, requests []Request, workers int) []Response {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	responses := make([]Response, len(requests))

	tasks := make(chan int, workers*2)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				req := requests[i]
				res, err := r.Run(ctx, req.RunList, req.Baseline)
				responses[i] = Response{Name: req.Name, Result: res, Err: err}
			}
		}()
	}

	// index of the request whose response is reused, -1 when solved
	sameAs := make([]int, len(requests))
	seen := map[string]int{}
	for i, req := range requests {
		sameAs[i] = -1
		if d, err := requestDigest(req.RunList, req.Baseline, r); err == nil {
			if j, ok := seen[d]; ok {
				sameAs[i] = j
				continue
			}
			seen[d] = i
		}
		tasks <- i
	}
	close(tasks)
	wg.Wait()

	for i, j := range sameAs {
		if j >= 0 {
			responses[i] = Response{Name: requests[i].Name, Result: responses[j].Result, Err: responses[j].Err}
		}
	}
	return responses
}
