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
	"time"

	"github.com/Masterminds/log-go"
)

// VariableOrder selects which unbound variable search assigns next.
type VariableOrder int

const (
	// OrderInput takes variables in the order they were marked as decision
	// variables, then in registration order.
	OrderInput VariableOrder = iota
	// OrderSmallestDomain takes the variable with the fewest values left.
	OrderSmallestDomain
	// OrderMostConstrained takes the variable with the smallest ratio of
	// domain size to constraint degree.
	OrderMostConstrained
)

func (o VariableOrder) String() string {
	switch o {
	case OrderSmallestDomain:
		return "dom"
	case OrderMostConstrained:
		return "domdeg"
	default:
		return "input"
	}
}

// ValueOrder selects the order in which the values of a variable are tried.
type ValueOrder int

const (
	// ValuesAscending tries the lowest index, that is the oldest version,
	// first.
	ValuesAscending ValueOrder = iota
	// ValuesDescending tries the newest version first.
	ValuesDescending
)

func (o ValueOrder) String() string {
	if o == ValuesDescending {
		return "desc"
	}
	return "asc"
}

// Pruner is consulted at every search node after propagation. Returning
// true discards the node and everything below it. It is the branch-and-bound
// hook: an objective returns true when no completion of p can beat its
// best score.
//
// The Partial is only valid for the duration of the call.
type Pruner interface {
	Prune(p Partial) bool
}

// Option configures a Solver.
type Option func(*config)

type config struct {
	varOrder  VariableOrder
	valOrder  ValueOrder
	hints     map[int]int
	pruner    Pruner
	nodeLimit int
	timeLimit time.Duration
	logger    log.Logger
}

// WithVariableOrder sets the variable selection heuristic.
func WithVariableOrder(o VariableOrder) Option {
	return func(c *config) { c.varOrder = o }
}

// WithValueOrder sets the value ordering.
func WithValueOrder(o ValueOrder) Option {
	return func(c *config) { c.valOrder = o }
}

// WithValueHints makes search try the hinted value of a variable before any
// other. Hints only change which solution is found first.
func WithValueHints(hints map[*Variable]int) Option {
	return func(c *config) {
		c.hints = make(map[int]int, len(hints))
		for v, val := range hints {
			c.hints[v.id] = val
		}
	}
}

// WithPruner installs a branch-and-bound hook.
func WithPruner(p Pruner) Option {
	return func(c *config) { c.pruner = p }
}

// WithNodeLimit stops the search after n node expansions with
// ErrSearchLimitReached. Zero means no limit.
func WithNodeLimit(n int) Option {
	return func(c *config) { c.nodeLimit = n }
}

// WithTimeLimit stops the search after d with ErrSearchLimitReached. Zero
// means no limit.
func WithTimeLimit(d time.Duration) Option {
	return func(c *config) { c.timeLimit = d }
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}
