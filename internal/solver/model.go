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
	"fmt"

	"github.com/pkg/errors"
)

// Variable is a finite-domain integer variable owned by a Model.
type Variable struct {
	id   int
	name string
	size int
}

// ID returns the position of the variable in its model.
func (v *Variable) ID() int { return v.id }

// Name returns the unique name the variable was registered with.
func (v *Variable) Name() string { return v.name }

// Size returns the width of the variable's value range.
func (v *Variable) Size() int { return v.size }

func (v *Variable) String() string { return v.name }

// Model is the constraint problem: variables with their initial domains,
// the constraints linking them, and the variables search must branch on.
//
// A Model is built once and is read-only while a Solver enumerates it, so
// several solvers may share one model.
type Model struct {
	vars        []*Variable
	domains     []Domain
	byName      map[string]*Variable
	constraints []Constraint
	watchers    [][]int
	branch      []*Variable
	branchSet   map[int]bool
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{
		byName:    map[string]*Variable{},
		branchSet: map[int]bool{},
	}
}

// NewVariable registers a variable with initial domain {0, ..., size-1}.
// Names are unique; registering a name twice panics.
func (m *Model) NewVariable(name string, size int) *Variable {
	if _, ok := m.byName[name]; ok {
		panic(fmt.Sprintf("solver: variable %q registered twice", name))
	}
	v := &Variable{id: len(m.vars), name: name, size: size}
	m.vars = append(m.vars, v)
	m.domains = append(m.domains, NewDomain(size))
	m.watchers = append(m.watchers, nil)
	m.byName[name] = v
	return v
}

// Restrict narrows the initial domain of v to values. It fails, leaving
// the domain untouched, when nothing would be left.
func (m *Model) Restrict(v *Variable, values []int) error {
	m.mustOwn(v)
	allowed := NewDomainFromValues(v.size, values)
	d := m.domains[v.id].Intersect(allowed)
	if d.Empty() {
		return errors.Errorf("restricting %s to %s leaves no value", v, allowed)
	}
	m.domains[v.id] = d
	return nil
}

// AddConstraint registers c. Every variable c refers to must belong to the
// model.
func (m *Model) AddConstraint(c Constraint) {
	idx := len(m.constraints)
	m.constraints = append(m.constraints, c)
	seen := map[int]bool{}
	for _, v := range c.Variables() {
		m.mustOwn(v)
		if seen[v.id] {
			continue
		}
		seen[v.id] = true
		m.watchers[v.id] = append(m.watchers[v.id], idx)
	}
}

// BranchOn marks v as a decision variable. Decision variables are assigned
// first, in the order they were marked; the remaining variables follow.
func (m *Model) BranchOn(v *Variable) {
	m.mustOwn(v)
	if m.branchSet[v.id] {
		return
	}
	m.branchSet[v.id] = true
	m.branch = append(m.branch, v)
}

// Variables returns the variables in registration order.
func (m *Model) Variables() []*Variable {
	out := make([]*Variable, len(m.vars))
	copy(out, m.vars)
	return out
}

// VariableCount returns the number of variables.
func (m *Model) VariableCount() int {
	return len(m.vars)
}

// Lookup finds a variable by name.
func (m *Model) Lookup(name string) (*Variable, bool) {
	v, ok := m.byName[name]
	return v, ok
}

// Domain returns the initial domain of v.
func (m *Model) Domain(v *Variable) Domain {
	m.mustOwn(v)
	return m.domains[v.id]
}

// Constraints returns the registered constraints.
func (m *Model) Constraints() []Constraint {
	out := make([]Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}

// Degree returns the number of constraints involving v.
func (m *Model) Degree(v *Variable) int {
	m.mustOwn(v)
	return len(m.watchers[v.id])
}

// DecisionVariables returns the variables marked with BranchOn, in order.
func (m *Model) DecisionVariables() []*Variable {
	out := make([]*Variable, len(m.branch))
	copy(out, m.branch)
	return out
}

// Validate checks that every constraint is well formed against the
// variables it refers to.
func (m *Model) Validate() error {
	for i, c := range m.constraints {
		if v, ok := c.(interface{ validate() error }); ok {
			if err := v.validate(); err != nil {
				return errors.Wrapf(err, "constraint %d (%s)", i, c)
			}
		}
	}
	return nil
}

func (m *Model) mustOwn(v *Variable) {
	if v == nil || v.id < 0 || v.id >= len(m.vars) || m.vars[v.id] != v {
		panic(fmt.Sprintf("solver: variable %v does not belong to this model", v))
	}
}
