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

// Package objective scores the solutions of a resolution and keeps the best
// one seen so far.
package objective

import (
	"math"

	"github.com/rancher-sandbox/depselector/internal/solver"
)

// Scorer gives a solution a score. Higher is better.
type Scorer interface {
	Score(sol solver.Solution) float64
}

// ScorerFunc adapts a function to a Scorer.
type ScorerFunc func(sol solver.Solution) float64

// Score calls f(sol).
func (f ScorerFunc) Score(sol solver.Solution) float64 {
	return f(sol)
}

// Bounder is implemented by scorers able to bound the score of every
// completion of a partial assignment. UpperBound must never return less
// than the score of the best completion, or search would discard it.
type Bounder interface {
	UpperBound(p solver.Partial) float64
}

// Function keeps the best solution among those it considered. It starts
// with a score of -Inf, so that the first solution is always accepted.
//
// A Function is owned by one enumeration and is not safe for concurrent
// use.
type Function struct {
	scorer     Scorer
	best       map[string]int
	bestScore  float64
	considered int
}

// New returns a Function scoring solutions with scorer.
func New(scorer Scorer) *Function {
	if scorer == nil {
		panic("objective: nil scorer")
	}
	return &Function{scorer: scorer, bestScore: math.Inf(-1)}
}

// Consider scores sol and keeps it when its score is strictly greater than
// the best so far. Among equal scores the first solution considered wins.
// It returns whether sol became the best.
func (f *Function) Consider(sol solver.Solution) bool {
	f.considered++
	score := f.scorer.Score(sol)
	if score > f.bestScore {
		f.best = sol.Map()
		f.bestScore = score
		return true
	}
	return false
}

// Best returns the best solution so far, as a variable name to value
// mapping, and its score. ok is false when nothing was considered yet.
func (f *Function) Best() (best map[string]int, score float64, ok bool) {
	if f.best == nil {
		return nil, f.bestScore, false
	}
	out := make(map[string]int, len(f.best))
	for k, v := range f.best {
		out[k] = v
	}
	return out, f.bestScore, true
}

// BestScore returns the best score so far, -Inf before any solution.
func (f *Function) BestScore() float64 {
	return f.bestScore
}

// Considered returns how many solutions were considered.
func (f *Function) Considered() int {
	return f.considered
}

// Prune implements solver.Pruner. A node is discarded when the scorer can
// bound it and the bound does not exceed the best score: a solution with an
// equal score would never replace the best one anyway.
func (f *Function) Prune(p solver.Partial) bool {
	b, ok := f.scorer.(Bounder)
	if !ok || f.best == nil {
		return false
	}
	return b.UpperBound(p) <= f.bestScore
}
