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

// Constraint narrows variable domains during search.
//
// Propagate reads the current domains from st and writes narrowed ones back
// with st.Set. It returns false as soon as some domain becomes empty. It must
// be monotonic: it may only remove values.
type Constraint interface {
	Variables() []*Variable
	Propagate(st *State) bool
	String() string
}

// State is the set of current domains at one node of the search tree.
// Domains changed through Set are queued so that the constraints watching
// them run again.
type State struct {
	domains []Domain
	queue   []int
	queued  []bool
}

func newState(domains []Domain) *State {
	st := &State{
		domains: make([]Domain, len(domains)),
		queued:  make([]bool, len(domains)),
	}
	copy(st.domains, domains)
	return st
}

func (st *State) clone() *State {
	return newState(st.domains)
}

// Domain returns the current domain of v.
func (st *State) Domain(v *Variable) Domain {
	return st.domains[v.id]
}

// Set replaces the domain of v. It returns false when d is empty.
func (st *State) Set(v *Variable, d Domain) bool {
	if d.Empty() {
		st.domains[v.id] = d
		return false
	}
	if d.Equal(st.domains[v.id]) {
		return true
	}
	st.domains[v.id] = d
	if !st.queued[v.id] {
		st.queued[v.id] = true
		st.queue = append(st.queue, v.id)
	}
	return true
}

func (st *State) pop() (int, bool) {
	if len(st.queue) == 0 {
		return 0, false
	}
	id := st.queue[0]
	st.queue = st.queue[1:]
	st.queued[id] = false
	return id, true
}

// Implication is the reified constraint "if If equals Value then Then must
// take a value in Allowed". It encodes one dependency edge: choosing a given
// version of a package restricts the versions of the package it depends on.
type Implication struct {
	If      *Variable
	Value   int
	Then    *Variable
	Allowed Domain
}

// NewImplication builds the constraint x == a → y ∈ allowed.
func NewImplication(x *Variable, a int, y *Variable, allowed []int) *Implication {
	return &Implication{
		If:      x,
		Value:   a,
		Then:    y,
		Allowed: NewDomainFromValues(y.size, allowed),
	}
}

// Variables returns the two variables linked by the implication.
func (c *Implication) Variables() []*Variable {
	return []*Variable{c.If, c.Then}
}

// Propagate enforces the implication in both directions: once If is bound
// to Value, Then is narrowed to Allowed; once Then can no longer take an
// allowed value, Value is removed from If.
func (c *Implication) Propagate(st *State) bool {
	x := st.Domain(c.If)
	if !x.Has(c.Value) {
		return true
	}

	if c.If == c.Then {
		// a package constraining its own version
		if !c.Allowed.Has(c.Value) {
			return st.Set(c.If, x.Remove(c.Value))
		}
		return true
	}

	narrowed := st.Domain(c.Then).Intersect(c.Allowed)
	if narrowed.Empty() {
		return st.Set(c.If, x.Remove(c.Value))
	}
	if x.IsSingleton() {
		return st.Set(c.Then, narrowed)
	}
	return true
}

func (c *Implication) String() string {
	return fmt.Sprintf("%s = %d → %s ∈ %s", c.If, c.Value, c.Then, c.Allowed)
}

func (c *Implication) validate() error {
	if c.Value < 0 || c.Value >= c.If.size {
		return errors.Errorf("value %d out of range for %s", c.Value, c.If)
	}
	if c.Allowed.Size() != c.Then.size {
		return errors.Errorf("allowed set of size %d for %s of size %d", c.Allowed.Size(), c.Then, c.Then.size)
	}
	return nil
}

// Member restricts a variable to a set of values.
type Member struct {
	Var     *Variable
	Allowed Domain
}

// NewMember builds the constraint v ∈ allowed.
func NewMember(v *Variable, allowed []int) *Member {
	return &Member{Var: v, Allowed: NewDomainFromValues(v.size, allowed)}
}

// Variables returns the constrained variable.
func (c *Member) Variables() []*Variable {
	return []*Variable{c.Var}
}

// Propagate intersects the variable's domain with Allowed.
func (c *Member) Propagate(st *State) bool {
	return st.Set(c.Var, st.Domain(c.Var).Intersect(c.Allowed))
}

func (c *Member) String() string {
	return fmt.Sprintf("%s ∈ %s", c.Var, c.Allowed)
}

func (c *Member) validate() error {
	if c.Allowed.Size() != c.Var.size {
		return errors.Errorf("allowed set of size %d for %s of size %d", c.Allowed.Size(), c.Var, c.Var.size)
	}
	return nil
}
