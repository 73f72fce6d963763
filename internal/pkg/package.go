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

// Package pkg holds the dependency graph: packages, their versions, the
// dependencies each version declares, and its encoding into a solver model.
package pkg

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/rancher-sandbox/depselector/internal/constraint"
	"github.com/rancher-sandbox/depselector/internal/versionset"
)

// Package is a named unit that offers one or more versions. Each version
// declares its own dependencies on other packages of the same Graph.
//
// Packages are only created through Graph.Package, so that the graph stays
// the single authority for name lookups.
type Package struct {
	graph     *Graph
	name      string
	versions  *versionset.VersionSet
	byVersion map[string]*PackageVersion
	inserted  []*PackageVersion
}

// Name returns the package name.
func (p *Package) Name() string {
	return p.name
}

// AddVersion registers v and returns it. Adding a version that is already
// registered returns the existing one.
func (p *Package) AddVersion(v *semver.Version) *PackageVersion {
	if pv, ok := p.byVersion[v.String()]; ok {
		return pv
	}
	p.graph.mustNotBeFrozen()

	pv := &PackageVersion{pkg: p, version: v}
	p.versions.Add(v)
	p.byVersion[v.String()] = pv
	p.inserted = append(p.inserted, pv)
	return pv
}

// Version returns the registered version equal to v.
func (p *Package) Version(v *semver.Version) (*PackageVersion, bool) {
	pv, ok := p.byVersion[v.String()]
	return pv, ok
}

// Versions returns the registered versions in insertion order.
func (p *Package) Versions() []*PackageVersion {
	out := make([]*PackageVersion, len(p.inserted))
	copy(out, p.inserted)
	return out
}

// Len returns the number of registered versions, which is also the size of
// the package's dense index range.
func (p *Package) Len() int {
	return p.versions.Len()
}

// IndexOf returns the dense index of v. It panics when v is not registered.
func (p *Package) IndexOf(v *semver.Version) int {
	return p.versions.IndexOf(v)
}

// LookupIndex returns the dense index of v, if registered.
func (p *Package) LookupIndex(v *semver.Version) (int, bool) {
	return p.versions.Lookup(v)
}

// VersionAt returns the version with dense index i. It panics when i is out
// of range.
func (p *Package) VersionAt(i int) *semver.Version {
	return p.versions.VersionAt(i)
}

// Matching returns the dense indices of the versions satisfying c.
func (p *Package) Matching(c constraint.Constraint) []int {
	return constraint.MatchingIndices(c, p.versions)
}

func (p *Package) String() string {
	return fmt.Sprintf("%s %s", p.name, p.versions)
}

// PackageVersion is one version of a package together with the
// dependencies it declares.
type PackageVersion struct {
	pkg     *Package
	version *semver.Version
	deps    []*Dependency
}

// Package returns the package owning this version.
func (pv *PackageVersion) Package() *Package {
	return pv.pkg
}

// Version returns the version.
func (pv *PackageVersion) Version() *semver.Version {
	return pv.version
}

// Index returns the dense index of this version within its package.
func (pv *PackageVersion) Index() int {
	return pv.pkg.IndexOf(pv.version)
}

// AddDependency declares that this version requires a version of target
// satisfying c. A nil c is Unconstrained.
func (pv *PackageVersion) AddDependency(target *Package, c constraint.Constraint) *Dependency {
	pv.pkg.graph.mustNotBeFrozen()
	if target == nil || target.graph != pv.pkg.graph {
		panic(fmt.Sprintf("pkg: dependency of %s on a package from another graph", pv))
	}
	if c == nil {
		c = constraint.Unconstrained{}
	}
	d := &Dependency{dependent: pv, target: target, constraint: c}
	pv.deps = append(pv.deps, d)
	return d
}

// Dependencies returns the declared dependencies, in declaration order.
func (pv *PackageVersion) Dependencies() []*Dependency {
	out := make([]*Dependency, len(pv.deps))
	copy(out, pv.deps)
	return out
}

// Fingerprint returns a unique id of the package version.
func (pv *PackageVersion) Fingerprint() string {
	return CreateFingerprint(pv.pkg.name, pv.version)
}

func (pv *PackageVersion) String() string {
	return pv.Fingerprint()
}

// CreateFingerprint returns the fingerprint of version v of package name.
func CreateFingerprint(name string, v *semver.Version) string {
	return fmt.Sprintf("%s@%s", name, v)
}

// Dependency is an edge from a package version to the package it requires.
type Dependency struct {
	dependent  *PackageVersion
	target     *Package
	constraint constraint.Constraint
}

// Dependent returns the package version declaring the dependency.
func (d *Dependency) Dependent() *PackageVersion {
	return d.dependent
}

// Target returns the required package.
func (d *Dependency) Target() *Package {
	return d.target
}

// Constraint returns the constraint on the target's versions.
func (d *Dependency) Constraint() constraint.Constraint {
	return d.constraint
}

// Matching returns the dense indices of the target versions satisfying the
// dependency.
func (d *Dependency) Matching() []int {
	return d.target.Matching(d.constraint)
}

func (d *Dependency) String() string {
	return fmt.Sprintf("%s -> %s (%s)", d.dependent, d.target.name, d.constraint)
}
