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
	"sort"

	"github.com/Masterminds/log-go"

	"github.com/rancher-sandbox/depselector/internal/versionset"
)

// Graph owns every package of a resolution world. It is built once, then
// frozen; a frozen graph never changes and can be read by any number of
// concurrent resolutions.
type Graph struct {
	packages map[string]*Package
	order    []*Package
	frozen   bool
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{packages: map[string]*Package{}}
}

// Package returns the package called name, creating it on first use.
// Creating a package on a frozen graph panics.
func (g *Graph) Package(name string) *Package {
	if p, ok := g.packages[name]; ok {
		return p
	}
	g.mustNotBeFrozen()

	p := &Package{
		graph:     g,
		name:      name,
		versions:  versionset.New(),
		byVersion: map[string]*PackageVersion{},
	}
	g.packages[name] = p
	g.order = append(g.order, p)
	return p
}

// Lookup returns the package called name without creating it.
func (g *Graph) Lookup(name string) (*Package, bool) {
	p, ok := g.packages[name]
	return p, ok
}

// Packages returns every package in creation order.
func (g *Graph) Packages() []*Package {
	out := make([]*Package, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of packages.
func (g *Graph) Len() int {
	return len(g.order)
}

// Freeze ends the construction of the graph.
func (g *Graph) Freeze() {
	g.frozen = true
}

// Frozen reports whether Freeze was called.
func (g *Graph) Frozen() bool {
	return g.frozen
}

func (g *Graph) mustNotBeFrozen() {
	if g.frozen {
		panic("pkg: graph is frozen")
	}
}

// Reachable returns the packages reachable from names through the
// dependencies of any of their versions, names included. The order is
// breadth-first, following names and then dependency declaration order, so
// it is stable for a given graph.
//
// Reachable fails with a *ConfigurationError when a name is unknown, when a
// reached package has no versions, or when a reached dependency matches
// none of its target's versions.
func (g *Graph) Reachable(names ...string) ([]*Package, error) {
	var (
		out   []*Package
		queue []*Package
		seen  = map[*Package]bool{}
	)

	for _, name := range names {
		p, ok := g.packages[name]
		if !ok {
			return nil, &ConfigurationError{Package: name, Reason: ReasonUnknownPackage}
		}
		if p.Len() == 0 {
			return nil, &ConfigurationError{Package: name, Reason: ReasonNoVersions}
		}
		if !seen[p] {
			seen[p] = true
			queue = append(queue, p)
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		out = append(out, p)

		for _, pv := range p.inserted {
			for _, d := range pv.deps {
				if err := checkDependency(d); err != nil {
					return nil, err
				}
				if !seen[d.target] {
					seen[d.target] = true
					queue = append(queue, d.target)
				}
			}
		}
	}
	return out, nil
}

func checkDependency(d *Dependency) error {
	if d.target.Len() == 0 {
		return &ConfigurationError{
			Package:    d.target.name,
			Dependent:  d.dependent.Fingerprint(),
			Constraint: d.constraint.String(),
			Reason:     ReasonNoVersions,
		}
	}
	if len(d.Matching()) == 0 {
		return &ConfigurationError{
			Package:    d.target.name,
			Dependent:  d.dependent.Fingerprint(),
			Constraint: d.constraint.String(),
			Reason:     ReasonNoMatch,
		}
	}
	return nil
}

// DebugPrint logs every package, its versions and their dependencies at
// debug level, sorted by name.
func (g *Graph) DebugPrint(logger log.Logger) {
	logger.Debugf("Printing graph (%d packages)", len(g.order))
	pkgs := g.Packages()
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].name < pkgs[j].name })
	for _, p := range pkgs {
		logger.Debug(p.String())
		for _, pv := range p.inserted {
			for _, d := range pv.deps {
				logger.Debug(fmt.Sprintf("  %s", d))
			}
		}
	}
}
