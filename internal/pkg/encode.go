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

package pkg

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/constraint"
	"github.com/rancher-sandbox/depselector/internal/solver"
)

// Encoding is the translation of a set of packages into a solver model:
// one domain variable per package, ranging over its dense version indices,
// and one implication per dependency edge.
type Encoding struct {
	model    *solver.Model
	packages []*Package
	vars     map[*Package]*solver.Variable
	byName   map[string]*Package
}

// Encode registers packages on model. packages must be closed under
// dependencies, as returned by Graph.Reachable.
//
// For every version v of a package P, and every dependency of v on Q with
// constraint C, the model gets the constraint
//
//	P == index(v) → Q ∈ matching(Q, C)
//
// Diamonds and self dependencies need no special handling: every edge
// contributes its own implication and all of them must hold.
func Encode(model *solver.Model, packages []*Package) (*Encoding, error) {
	e := &Encoding{
		model:    model,
		packages: packages,
		vars:     make(map[*Package]*solver.Variable, len(packages)),
		byName:   make(map[string]*Package, len(packages)),
	}

	for _, p := range packages {
		if p.Len() == 0 {
			return nil, &ConfigurationError{Package: p.name, Reason: ReasonNoVersions}
		}
		e.vars[p] = model.NewVariable(p.name, p.Len())
		e.byName[p.name] = p
	}

	for _, p := range packages {
		x := e.vars[p]
		for _, pv := range p.inserted {
			for _, d := range pv.deps {
				y, ok := e.vars[d.target]
				if !ok {
					return nil, errors.Errorf("dependency %s leaves the encoded packages", d)
				}
				if err := checkDependency(d); err != nil {
					return nil, err
				}
				model.AddConstraint(solver.NewImplication(x, pv.Index(), y, d.Matching()))
			}
		}
	}
	return e, nil
}

// Model returns the model the encoding was registered on.
func (e *Encoding) Model() *solver.Model {
	return e.model
}

// Packages returns the encoded packages, in encoding order.
func (e *Encoding) Packages() []*Package {
	out := make([]*Package, len(e.packages))
	copy(out, e.packages)
	return out
}

// Variable returns the domain variable of p. p must be encoded.
func (e *Encoding) Variable(p *Package) *solver.Variable {
	v, ok := e.vars[p]
	if !ok {
		panic(fmt.Sprintf("pkg: package %q is not encoded", p.Name()))
	}
	return v
}

// BranchOn makes p a decision variable of the search.
func (e *Encoding) BranchOn(p *Package) {
	e.model.BranchOn(e.Variable(p))
}

// Pin restricts the versions p may take to those satisfying c.
func (e *Encoding) Pin(p *Package, c constraint.Constraint) error {
	matching := p.Matching(c)
	if len(matching) == 0 {
		return &ConfigurationError{Package: p.name, Constraint: c.String(), Reason: ReasonNoMatch}
	}
	if err := e.model.Restrict(e.Variable(p), matching); err != nil {
		return &ConfigurationError{Package: p.name, Constraint: c.String(), Reason: ReasonConflictingPins}
	}
	return nil
}

// Lookup returns the encoded package called name.
func (e *Encoding) Lookup(name string) (*Package, bool) {
	p, ok := e.byName[name]
	return p, ok
}

// Baseline maps the encoded packages present in baseline to the dense index
// of their baseline version. A baseline version the package does not offer
// maps to -1. Packages outside the encoding are left out.
func (e *Encoding) Baseline(baseline map[string]*semver.Version) map[string]int {
	out := make(map[string]int, len(baseline))
	for _, p := range e.packages {
		v, ok := baseline[p.name]
		if !ok || v == nil {
			continue
		}
		i, ok := p.LookupIndex(v)
		if !ok {
			i = -1
		}
		out[p.name] = i
	}
	return out
}

// Hints returns, for the value hints of a search, the variables of the
// encoded packages whose baseline version is offered.
func (e *Encoding) Hints(baseline map[string]*semver.Version) map[*solver.Variable]int {
	hints := map[*solver.Variable]int{}
	for name, i := range e.Baseline(baseline) {
		if i < 0 {
			continue
		}
		hints[e.vars[e.byName[name]]] = i
	}
	return hints
}

// Decode translates a solution back to versions, for every encoded
// package.
func (e *Encoding) Decode(sol solver.Solution) map[string]*semver.Version {
	out := make(map[string]*semver.Version, len(e.packages))
	for _, p := range e.packages {
		out[p.name] = p.VersionAt(sol.Value(e.vars[p]))
	}
	return out
}

// DecodeIndices translates a name to dense index mapping back to versions.
// An unknown name or an index out of a package's range panics.
func (e *Encoding) DecodeIndices(indices map[string]int) map[string]*semver.Version {
	out := make(map[string]*semver.Version, len(indices))
	for name, i := range indices {
		p, ok := e.byName[name]
		if !ok {
			panic(fmt.Sprintf("pkg: decoding unknown package %q", name))
		}
		out[name] = p.VersionAt(i)
	}
	return out
}
