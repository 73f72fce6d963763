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
	"strings"

	"github.com/Masterminds/log-go"
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/constraint"
	"github.com/rancher-sandbox/depselector/internal/pkg"
)

// Configuration is the state shared by every action: the frozen package
// graph and the logger.
type Configuration struct {
	Graph *pkg.Graph
	Log   log.Logger
}

// NewConfiguration returns a Configuration over graph. A nil logger means
// log.Current.
func NewConfiguration(graph *pkg.Graph, logger log.Logger) *Configuration {
	if logger == nil {
		logger = log.Current
	}
	return &Configuration{Graph: graph, Log: logger}
}

// Constraint restricts the versions of a package.
type Constraint = constraint.Constraint

// Unconstrained matches every version.
func Unconstrained() Constraint {
	return constraint.Unconstrained{}
}

// Exact matches v only.
func Exact(v *semver.Version) Constraint {
	return constraint.NewExact(v)
}

// Range matches the versions satisfying c.
func Range(c *semver.Constraints) Constraint {
	return constraint.NewRange(c, "")
}

// ParseConstraint parses "", "*", "1.2.3", "= 1.2.3" or a semver range.
func ParseConstraint(expr string) (Constraint, error) {
	return constraint.Parse(expr)
}

// RunListItem is a package the caller wants resolved. A nil Constraint
// accepts any version.
type RunListItem struct {
	Name       string
	Constraint Constraint
}

func (i RunListItem) String() string {
	if i.Constraint == nil {
		return i.Name
	}
	if _, ok := i.Constraint.(constraint.Unconstrained); ok {
		return i.Name
	}
	return i.Name + " " + i.Constraint.String()
}

// RunList is the ordered list of requested packages.
type RunList []RunListItem

// Names returns the package names of the run list, in order.
func (r RunList) Names() []string {
	names := make([]string, len(r))
	for i, item := range r {
		names[i] = item.Name
	}
	return names
}

// Baseline is the currently deployed version of each package.
type Baseline map[string]*semver.Version

// ParseRunListItem parses a run list entry: "name", "name@1.2.3",
// "name=EXPR" or "name EXPR", where EXPR is anything ParseConstraint
// accepts.
func ParseRunListItem(s string) (RunListItem, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RunListItem{}, errors.New("empty run list item")
	}

	name, expr := s, ""
	if i := strings.IndexAny(s, "@= <>~^!"); i >= 0 {
		name, expr = s[:i], s[i:]
		expr = strings.TrimPrefix(expr, "@")
		if strings.HasPrefix(expr, "=") && !strings.HasPrefix(expr, "==") {
			expr = strings.TrimPrefix(expr, "=")
		}
	}
	if name == "" {
		return RunListItem{}, errors.Errorf("run list item %q has no package name", s)
	}

	c, err := ParseConstraint(expr)
	if err != nil {
		return RunListItem{}, errors.Wrapf(err, "run list item %q", s)
	}
	return RunListItem{Name: name, Constraint: c}, nil
}

// ParseRunList parses every entry with ParseRunListItem.
func ParseRunList(items []string) (RunList, error) {
	rl := make(RunList, 0, len(items))
	for _, s := range items {
		item, err := ParseRunListItem(s)
		if err != nil {
			return nil, err
		}
		rl = append(rl, item)
	}
	return rl, nil
}

// ParseBaseline parses a name to version mapping.
func ParseBaseline(current map[string]string) (Baseline, error) {
	b := make(Baseline, len(current))
	for name, ver := range current {
		v, err := semver.NewVersion(ver)
		if err != nil {
			return nil, errors.Wrapf(err, "current version of %q", name)
		}
		b[name] = v
	}
	return b, nil
}
