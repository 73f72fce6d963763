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

package objective

import (
	"math"
	"sort"

	"github.com/rancher-sandbox/depselector/internal/solver"
)

// EditDistance scores a solution by minus the number of baseline packages
// whose value differs from their baseline value.
//
// Packages the baseline does not mention do not count: adding a package is
// free, only changing one costs. Use AdditionPenalty to charge additions
// too.
type EditDistance struct {
	baseline map[string]int
	names    []string
}

// NewEditDistance returns an EditDistance over baseline, which maps
// variable names to the value they had before. A value of -1 marks a
// baseline version that is no longer offered; such a package always counts
// as changed.
func NewEditDistance(baseline map[string]int) *EditDistance {
	names := make([]string, 0, len(baseline))
	for name := range baseline {
		names = append(names, name)
	}
	sort.Strings(names)
	return &EditDistance{baseline: baseline, names: names}
}

// Score implements Scorer.
func (e *EditDistance) Score(sol solver.Solution) float64 {
	score := 0.0
	for _, name := range e.names {
		val, ok := sol.Lookup(name)
		if !ok {
			continue
		}
		if want := e.baseline[name]; want < 0 || val != want {
			score--
		}
	}
	return score
}

// UpperBound implements Bounder: every baseline package whose domain no
// longer holds its baseline value is bound to change.
func (e *EditDistance) UpperBound(p solver.Partial) float64 {
	score := 0.0
	for _, name := range e.names {
		d, ok := p.Lookup(name)
		if !ok {
			continue
		}
		if want := e.baseline[name]; want < 0 || !d.Has(want) {
			score--
		}
	}
	return score
}

// AdditionPenalty charges Weight for every variable the baseline does not
// mention, on top of the score of Base.
type AdditionPenalty struct {
	Base     Scorer
	Baseline map[string]int
	Weight   float64
}

// NewAdditionPenalty wraps base, charging weight per added package.
func NewAdditionPenalty(base Scorer, baseline map[string]int, weight float64) *AdditionPenalty {
	return &AdditionPenalty{Base: base, Baseline: baseline, Weight: weight}
}

// Score implements Scorer.
func (a *AdditionPenalty) Score(sol solver.Solution) float64 {
	score := a.Base.Score(sol)
	for name := range sol.Map() {
		if _, ok := a.Baseline[name]; !ok {
			score -= a.Weight
		}
	}
	return score
}

// UpperBound implements Bounder when Base does. Every variable is assigned
// in a complete solution, so the addition cost is known up front.
func (a *AdditionPenalty) UpperBound(p solver.Partial) float64 {
	b, ok := a.Base.(Bounder)
	if !ok {
		return math.Inf(1)
	}
	return b.UpperBound(p) - a.Weight*float64(a.additions(p))
}

func (a *AdditionPenalty) additions(p solver.Partial) int {
	n := 0
	for _, name := range p.Names() {
		if _, ok := a.Baseline[name]; !ok {
			n++
		}
	}
	return n
}
