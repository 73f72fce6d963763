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
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rancher-sandbox/depselector/internal/solver"
)

// Status tells whether a result is proven optimal.
type Status string

const (
	// StatusOptimal means the search space was fully explored: no other
	// solution scores better.
	StatusOptimal Status = "optimal"
	// StatusBestKnown means a limit or a cancellation stopped the search
	// after it found at least one solution. The result is valid but may not
	// be optimal.
	StatusBestKnown Status = "best-known"
)

// OutputMode selects the rendering of FormatOutput.
type OutputMode int

const (
	JSON OutputMode = iota
	YAML
	Table
)

var outputModeNames = map[OutputMode]string{JSON: "json", YAML: "yaml", Table: "table"}

func (m OutputMode) String() string {
	return outputModeNames[m]
}

// OutputModes lists the names ParseOutputMode accepts.
func OutputModes() []string {
	return []string{Table.String(), JSON.String(), YAML.String()}
}

// ParseOutputMode parses "table", "json" or "yaml".
func ParseOutputMode(s string) (OutputMode, error) {
	for m, name := range outputModeNames {
		if name == s {
			return m, nil
		}
	}
	return Table, errors.Errorf("invalid format type %q", s)
}

// SearchStats are the counters of one search.
type SearchStats = solver.Stats

// Result is a successful resolution.
type Result struct {
	Status Status
	// Versions holds the resolved version of every package reachable from
	// the run list.
	Versions map[string]*semver.Version
	Baseline Baseline
	// Score is the objective value of Versions. With the default objective
	// it is minus the number of changed baseline packages.
	Score  float64
	Stats  SearchStats
	Digest string
}

// ResolvedPackage is one line of a result.
type ResolvedPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Current string `json:"current,omitempty" yaml:"current,omitempty"`
	Changed bool   `json:"changed"`
}

// Packages lists the resolved packages sorted by name. Changed is set when
// the package is in the baseline with a different version.
func (r *Result) Packages() []ResolvedPackage {
	out := make([]ResolvedPackage, 0, len(r.Versions))
	for name, v := range r.Versions {
		rp := ResolvedPackage{Name: name, Version: v.String()}
		if cur, ok := r.Baseline[name]; ok && cur != nil {
			rp.Current = cur.String()
			rp.Changed = cur.String() != v.String()
		}
		out = append(out, rp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Changes returns the number of changed baseline packages.
func (r *Result) Changes() int {
	n := 0
	for _, p := range r.Packages() {
		if p.Changed {
			n++
		}
	}
	return n
}

type resultOutput struct {
	Status   Status            `json:"status"`
	Score    float64           `json:"score"`
	Packages []ResolvedPackage `json:"packages"`
}

// FormatOutput renders the result.
func (r *Result) FormatOutput(mode OutputMode) string {
	out := resultOutput{Status: r.Status, Score: r.Score, Packages: r.Packages()}

	var sb strings.Builder
	switch mode {
	case Table:
		sb.WriteString(fmt.Sprintf("Status: %s\n", colorStatus(r.Status)))
		sb.WriteString(fmt.Sprintf("Changed packages: %d\n", r.Changes()))
		sb.WriteString(fmt.Sprintf("Search: %d nodes, %d solutions (%s)\n",
			r.Stats.Nodes, r.Stats.Solutions, units.HumanDuration(r.Stats.Duration)))
		table := uitable.New()
		table.MaxColWidth = 80
		table.AddRow("NAME", "VERSION", "CURRENT", "CHANGED")
		for _, p := range out.Packages {
			table.AddRow(p.Name, p.Version, p.Current, p.Changed)
		}
		sb.WriteString(table.String())
		sb.WriteString("\n")
	case YAML:
		o, _ := yaml.Marshal(out)
		sb.Write(o)
	case JSON:
		o, _ := json.Marshal(out)
		sb.Write(o)
	}
	return sb.String()
}

func colorStatus(s Status) string {
	if s == StatusOptimal {
		return color.GreenString(string(s))
	}
	return color.YellowString(string(s))
}
