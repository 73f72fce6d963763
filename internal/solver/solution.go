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
	"sort"
	"strings"
)

// Solution is a complete assignment: one value per model variable.
// Solutions are immutable and remain valid after the enumeration that
// produced them moves on.
type Solution struct {
	model  *Model
	values []int
}

// Value returns the value assigned to v.
func (s Solution) Value(v *Variable) int {
	s.model.mustOwn(v)
	return s.values[v.id]
}

// Lookup returns the value assigned to the variable with the given name.
func (s Solution) Lookup(name string) (int, bool) {
	v, ok := s.model.Lookup(name)
	if !ok {
		return 0, false
	}
	return s.values[v.id], true
}

// Len returns the number of assigned variables.
func (s Solution) Len() int {
	return len(s.values)
}

// Map returns the assignment keyed by variable name.
func (s Solution) Map() map[string]int {
	m := make(map[string]int, len(s.values))
	for _, v := range s.model.vars {
		m[v.name] = s.values[v.id]
	}
	return m
}

func (s Solution) String() string {
	names := make([]string, 0, len(s.values))
	for _, v := range s.model.vars {
		names = append(names, v.name)
	}
	sort.Strings(names)
	strs := make([]string, len(names))
	for i, n := range names {
		val, _ := s.Lookup(n)
		strs[i] = fmt.Sprintf("%s=%d", n, val)
	}
	return strings.Join(strs, " ")
}

// Partial is a read-only view of the domains at a search node, handed to a
// Pruner.
type Partial struct {
	model   *Model
	domains []Domain
}

// Domain returns the current domain of v.
func (p Partial) Domain(v *Variable) Domain {
	p.model.mustOwn(v)
	return p.domains[v.id]
}

// Lookup returns the current domain of the variable with the given name.
func (p Partial) Lookup(name string) (Domain, bool) {
	v, ok := p.model.Lookup(name)
	if !ok {
		return Domain{}, false
	}
	return p.domains[v.id], true
}

// Bound returns the value of v if it is already fixed.
func (p Partial) Bound(v *Variable) (int, bool) {
	d := p.Domain(v)
	if d.IsSingleton() {
		return d.Min(), true
	}
	return 0, false
}

// Names returns the variable names, in registration order.
func (p Partial) Names() []string {
	names := make([]string, len(p.model.vars))
	for i, v := range p.model.vars {
		names[i] = v.name
	}
	return names
}
