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

package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/log-go"
	"github.com/pkg/errors"
)

var (
	// ErrStop may be returned by an EachSolution callback to end the
	// enumeration early. EachSolution then returns a nil error.
	ErrStop = errors.New("stop enumeration")

	// ErrSearchLimitReached means a node or time limit cut the search short.
	// Solutions delivered before it are valid, but the enumeration is
	// incomplete.
	ErrSearchLimitReached = errors.New("search limit reached")
)

// Stats describes one enumeration.
type Stats struct {
	Nodes     int
	Failures  int
	Pruned    int
	Solutions int
	MaxDepth  int
	Duration  time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("nodes=%d failures=%d pruned=%d solutions=%d depth=%d time=%s",
		s.Nodes, s.Failures, s.Pruned, s.Solutions, s.MaxDepth, s.Duration)
}

// Solver enumerates the solutions of a Model by depth-first search with
// constraint propagation at every node.
//
// A Solver holds no search state between calls: every EachSolution starts
// from the model's initial domains, and for a given model and options the
// sequence of solutions is always the same.
type Solver struct {
	model *Model
	cfg   config
}

// New creates a solver over m.
func New(m *Model, opts ...Option) *Solver {
	s := &Solver{model: m}
	for _, o := range opts {
		if o != nil {
			o(&s.cfg)
		}
	}
	if s.cfg.logger == nil {
		s.cfg.logger = log.Current
	}
	return s
}

// EachSolution calls fn with every complete assignment satisfying all
// constraints, lazily, in search order. An unsatisfiable model yields no
// call and a nil error.
//
// The enumeration ends early when fn returns an error (ErrStop ends it
// without error), when ctx is done (ctx.Err() is returned), or when a
// configured limit is hit (ErrSearchLimitReached).
func (s *Solver) EachSolution(ctx context.Context, fn func(Solution) error) (Stats, error) {
	if err := s.model.Validate(); err != nil {
		return Stats{}, errors.Wrap(err, "invalid model")
	}

	sr := &search{
		Solver: s,
		ctx:    ctx,
		fn:     fn,
		start:  time.Now(),
	}
	if s.cfg.timeLimit > 0 {
		sr.deadline = sr.start.Add(s.cfg.timeLimit)
	}

	root := newState(s.model.domains)
	err := sr.run(root)
	sr.stats.Duration = time.Since(sr.start)
	if err == ErrStop {
		err = nil
	}

	s.cfg.logger.Debugf("search finished: %s", sr.stats)
	return sr.stats, err
}

type search struct {
	*Solver
	ctx      context.Context
	fn       func(Solution) error
	start    time.Time
	deadline time.Time
	stats    Stats
}

func (sr *search) run(root *State) error {
	// every constraint runs once at the root, after that only the ones
	// watching a changed variable
	for _, c := range sr.model.constraints {
		if !c.Propagate(root) {
			sr.stats.Failures++
			return nil
		}
	}
	if !sr.propagate(root) {
		sr.stats.Failures++
		return nil
	}
	return sr.dfs(root, 0)
}

func (sr *search) propagate(st *State) bool {
	for {
		id, ok := st.pop()
		if !ok {
			return true
		}
		for _, ci := range sr.model.watchers[id] {
			if !sr.model.constraints[ci].Propagate(st) {
				return false
			}
		}
	}
}

func (sr *search) checkLimits() error {
	select {
	case <-sr.ctx.Done():
		return sr.ctx.Err()
	default:
	}
	if sr.cfg.nodeLimit > 0 && sr.stats.Nodes >= sr.cfg.nodeLimit {
		return ErrSearchLimitReached
	}
	if !sr.deadline.IsZero() && time.Now().After(sr.deadline) {
		return ErrSearchLimitReached
	}
	return nil
}

func (sr *search) dfs(st *State, depth int) error {
	if err := sr.checkLimits(); err != nil {
		return err
	}
	sr.stats.Nodes++
	if depth > sr.stats.MaxDepth {
		sr.stats.MaxDepth = depth
	}

	if sr.cfg.pruner != nil && sr.cfg.pruner.Prune(Partial{model: sr.model, domains: st.domains}) {
		sr.stats.Pruned++
		return nil
	}

	v := sr.selectVariable(st)
	if v == nil {
		sr.stats.Solutions++
		values := make([]int, len(st.domains))
		for i, d := range st.domains {
			values[i] = d.Min()
		}
		return sr.fn(Solution{model: sr.model, values: values})
	}

	for _, val := range sr.orderValues(v, st.domains[v.id]) {
		child := st.clone()
		if !child.Set(v, NewDomainFromValues(v.size, []int{val})) || !sr.propagate(child) {
			sr.stats.Failures++
			continue
		}
		if err := sr.dfs(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// selectVariable returns the next unbound variable, or nil when every
// variable is bound. Decision variables always go before the others.
func (sr *search) selectVariable(st *State) *Variable {
	if v := sr.pick(st, sr.model.branch); v != nil {
		return v
	}
	return sr.pick(st, sr.model.vars)
}

func (sr *search) pick(st *State, candidates []*Variable) *Variable {
	var best *Variable
	bestScore := 0.0
	for _, v := range candidates {
		d := st.domains[v.id]
		if d.IsSingleton() {
			continue
		}
		if sr.cfg.varOrder == OrderInput {
			return v
		}
		score := float64(d.Count())
		if sr.cfg.varOrder == OrderMostConstrained {
			score /= float64(1 + len(sr.model.watchers[v.id]))
		}
		// strict comparison keeps the earliest candidate on ties
		if best == nil || score < bestScore {
			best, bestScore = v, score
		}
	}
	return best
}

func (sr *search) orderValues(v *Variable, d Domain) []int {
	values := d.Values()
	if sr.cfg.valOrder == ValuesDescending {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}
	if hint, ok := sr.cfg.hints[v.id]; ok && d.Has(hint) {
		ordered := make([]int, 0, len(values))
		ordered = append(ordered, hint)
		for _, val := range values {
			if val != hint {
				ordered = append(ordered, val)
			}
		}
		return ordered
	}
	return values
}
