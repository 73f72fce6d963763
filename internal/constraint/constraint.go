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

// Package constraint holds the predicates a dependency places on the versions
// of its target package.
package constraint

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/versionset"
)

// Constraint is an immutable predicate over the versions of a package.
type Constraint interface {
	Check(v *semver.Version) bool
	String() string
}

// Unconstrained matches every version.
type Unconstrained struct{}

// Check always returns true.
func (Unconstrained) Check(*semver.Version) bool { return true }

func (Unconstrained) String() string { return "*" }

// Exact matches a single version, by semver equality.
type Exact struct {
	Version *semver.Version
}

// NewExact returns an Exact constraint on v.
func NewExact(v *semver.Version) Exact {
	if v == nil {
		panic("constraint: exact constraint on a nil version")
	}
	return Exact{Version: v}
}

// Check returns true when v equals the constrained version.
func (c Exact) Check(v *semver.Version) bool {
	return v != nil && c.Version.Equal(v)
}

func (c Exact) String() string {
	return fmt.Sprintf("= %s", c.Version)
}

// Range matches versions satisfying a semver comparison expression, such as
// ">= 1.2, < 2" or "~1.4".
type Range struct {
	Constraints *semver.Constraints
	expr        string
}

// NewRange wraps already parsed semver constraints. expr is kept for
// display only.
func NewRange(c *semver.Constraints, expr string) Range {
	if c == nil {
		panic("constraint: range over nil constraints")
	}
	return Range{Constraints: c, expr: expr}
}

// Check returns true when v satisfies the range.
func (c Range) Check(v *semver.Version) bool {
	return v != nil && c.Constraints.Check(v)
}

func (c Range) String() string {
	if c.expr != "" {
		return c.expr
	}
	return c.Constraints.String()
}

// MatchingIndices evaluates c against every version in set and returns the
// dense indices of the matches. An empty result means c cannot be satisfied
// by the package owning set.
func MatchingIndices(c Constraint, set *versionset.VersionSet) []int {
	if c == nil {
		c = Unconstrained{}
	}
	return set.Matching(c.Check)
}

// Parse turns a version expression into a Constraint.
//
// The empty string and "*" are Unconstrained. A bare version, optionally
// prefixed by "=" or "==", is Exact. Anything else is parsed as a semver
// range.
func Parse(expr string) (Constraint, error) {
	e := strings.TrimSpace(expr)
	if e == "" || e == "*" {
		return Unconstrained{}, nil
	}

	bare := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(e, "="), "="))
	if v, err := semver.StrictNewVersion(bare); err == nil {
		return NewExact(v), nil
	}

	c, err := semver.NewConstraint(e)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version constraint %q", expr)
	}
	return NewRange(c, e), nil
}
