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
	"time"

	"github.com/Masterminds/log-go"
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/objective"
	"github.com/rancher-sandbox/depselector/internal/pkg"
	"github.com/rancher-sandbox/depselector/internal/solver"
)

// Search orderings, see Resolve.
type (
	VariableOrder = solver.VariableOrder
	ValueOrder    = solver.ValueOrder
)

const (
	OrderInput           = solver.OrderInput
	OrderSmallestDomain  = solver.OrderSmallestDomain
	OrderMostConstrained = solver.OrderMostConstrained

	ValuesAscending  = solver.ValuesAscending
	ValuesDescending = solver.ValuesDescending
)

// ErrSearchLimitReached is returned, wrapped, when a node limit or the
// timeout stopped the search before any solution was found.
var ErrSearchLimitReached = solver.ErrSearchLimitReached

// ParseVariableOrder parses "input", "dom" or "domdeg".
func ParseVariableOrder(s string) (VariableOrder, error) {
	for _, o := range []VariableOrder{OrderInput, OrderSmallestDomain, OrderMostConstrained} {
		if o.String() == s {
			return o, nil
		}
	}
	return OrderInput, errors.Errorf("unknown variable order %q", s)
}

// ParseValueOrder parses "asc" (oldest version first) or "desc".
func ParseValueOrder(s string) (ValueOrder, error) {
	for _, o := range []ValueOrder{ValuesAscending, ValuesDescending} {
		if o.String() == s {
			return o, nil
		}
	}
	return ValuesAscending, errors.Errorf("unknown value order %q", s)
}

// Resolve picks one version for every package reachable from a run list,
// preferring the versions of a baseline.
type Resolve struct {
	cfg *Configuration

	// Policy scores candidate solutions. Nil means EditDistancePolicy.
	Policy        Policy
	VariableOrder VariableOrder
	ValueOrder    ValueOrder
	// NodeLimit and Timeout bound the search; zero means unbounded. When
	// one of them is hit after a solution was found, the result has
	// StatusBestKnown.
	NodeLimit int
	Timeout   time.Duration
	// NoBound disables branch-and-bound: every solution is enumerated.
	NoBound bool
}

// NewResolve creates a new Resolve object with the given configuration.
func NewResolve(cfg *Configuration) *Resolve {
	return &Resolve{cfg: cfg}
}

func (r *Resolve) policy() Policy {
	if r.Policy == nil {
		return EditDistancePolicy{}
	}
	return r.Policy
}

func (r *Resolve) policyName() string {
	return r.policy().Name()
}

// Run resolves rl against baseline.
//
// It fails with a *ConfigurationError when the run list or a reachable
// dependency cannot be satisfied on its own, and with an
// *UnsatisfiableError when the constraints together admit no solution.
// When ctx is done, or a limit is hit, the best solution found so far is
// returned with StatusBestKnown; if there is none, the error says why the
// search stopped.
//
// Run only reads the graph, so any number of runs may share one
// Configuration.
func (r *Resolve) Run(ctx context.Context, rl RunList, baseline Baseline) (*Result, error) {
	if r.cfg == nil || r.cfg.Graph == nil {
		panic("action: resolve without a package graph")
	}
	logger := r.cfg.Log
	if logger == nil {
		logger = log.Current
	}
	start := time.Now()

	digest, err := requestDigest(rl, baseline, r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash the resolution request")
	}

	if len(rl) == 0 {
		observeResolution(string(StatusOptimal), SearchStats{}, time.Since(start))
		return &Result{
			Status:   StatusOptimal,
			Versions: map[string]*semver.Version{},
			Baseline: baseline,
			Digest:   digest,
		}, nil
	}

	enc, err := r.encode(rl)
	if err != nil {
		observeResolution(outcomeConfiguration, SearchStats{}, time.Since(start))
		return nil, err
	}
	model := enc.Model()

	fn := objective.New(r.policy().Scorer(enc.Baseline(baseline)))
	opts := []solver.Option{
		solver.WithVariableOrder(r.VariableOrder),
		solver.WithValueOrder(r.ValueOrder),
		solver.WithValueHints(enc.Hints(baseline)),
		solver.WithNodeLimit(r.NodeLimit),
		solver.WithTimeLimit(r.Timeout),
		solver.WithLogger(logger),
	}
	if !r.NoBound {
		opts = append(opts, solver.WithPruner(fn))
	}

	logger.Debugf("Resolving %d packages, %d constraints", model.VariableCount(), len(model.Constraints()))
	stats, err := solver.New(model, opts...).EachSolution(ctx, func(sol solver.Solution) error {
		if fn.Consider(sol) {
			logger.Debugf("New best solution, score %g: %s", fn.BestScore(), sol)
		} else {
			logger.Debugf("Discarded solution: %s", sol)
		}
		return nil
	})

	best, score, found := fn.Best()
	status := StatusOptimal
	if err != nil {
		if !errors.Is(err, solver.ErrSearchLimitReached) && !errors.Is(err, context.Canceled) &&
			!errors.Is(err, context.DeadlineExceeded) {
			observeResolution(outcomeAborted, stats, time.Since(start))
			return nil, err
		}
		if !found {
			observeResolution(outcomeAborted, stats, time.Since(start))
			return nil, errors.WithMessage(err, "search stopped before finding a solution")
		}
		logger.Warnf("Search stopped early (%s), the result may not be optimal", err)
		status = StatusBestKnown
	}

	if !found {
		observeResolution(outcomeUnsatisfiable, stats, time.Since(start))
		return nil, &UnsatisfiableError{RunList: rl}
	}

	observeResolution(string(status), stats, time.Since(start))
	return &Result{
		Status:   status,
		Versions: enc.DecodeIndices(best),
		Baseline: baseline,
		Score:    score,
		Stats:    stats,
		Digest:   digest,
	}, nil
}

// encode builds the model of rl: the reachable packages, one decision
// variable per run list entry, restricted by its constraint.
func (r *Resolve) encode(rl RunList) (*pkg.Encoding, error) {
	pkgs, err := r.cfg.Graph.Reachable(rl.Names()...)
	if err != nil {
		return nil, err
	}
	enc, err := pkg.Encode(solver.NewModel(), pkgs)
	if err != nil {
		return nil, err
	}
	for _, item := range rl {
		p, _ := enc.Lookup(item.Name)
		enc.BranchOn(p)
		if item.Constraint == nil {
			continue
		}
		if err := enc.Pin(p, item.Constraint); err != nil {
			return nil, err
		}
	}
	return enc, nil
}
