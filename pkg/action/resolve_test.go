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
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/rancher-sandbox/depselector/internal/test"
)

func TestResolve(t *testing.T) {
	for _, tcase := range []struct {
		name       string
		world      []PackageInput
		runList    []string
		current    map[string]string
		want       map[string]string
		score      float64
		goldenYaml string
		goldenJSON string
	}{
		{
			name:       "keep the deployed A 2.0.0",
			world:      abcWorld(),
			runList:    []string{"A"},
			current:    map[string]string{"A": "2.0.0", "B": "1.0.0"},
			want:       map[string]string{"A": "2.0.0", "B": "1.0.0", "C": "1.0.0"},
			score:      0,
			goldenYaml: "output/resolve-abc-a2.yaml",
			goldenJSON: "output/resolve-abc-a2.json",
		},
		{
			name:       "keep the deployed A 1.0.0",
			world:      abcWorld(),
			runList:    []string{"A"},
			current:    map[string]string{"A": "1.0.0", "B": "2.0.0"},
			want:       map[string]string{"A": "1.0.0", "B": "2.0.0", "C": "1.0.0"},
			score:      0,
			goldenYaml: "output/resolve-abc-a1.yaml",
		},
		{
			name:       "pinned run list forces a change",
			world:      abcWorld(),
			runList:    []string{"A@1.0.0"},
			current:    map[string]string{"A": "2.0.0", "B": "1.0.0"},
			want:       map[string]string{"A": "1.0.0", "B": "2.0.0", "C": "1.0.0"},
			score:      -2,
			goldenYaml: "output/resolve-abc-pinned.yaml",
		},
		{
			name:    "no baseline takes the first solution",
			world:   abcWorld(),
			runList: []string{"A"},
			want:    map[string]string{"A": "1.0.0", "B": "2.0.0", "C": "1.0.0"},
		},
		{
			name:    "baseline version no longer offered",
			world:   abcWorld(),
			runList: []string{"A"},
			current: map[string]string{"A": "3.0.0", "B": "1.0.0"},
			want:    map[string]string{"A": "2.0.0", "B": "1.0.0", "C": "1.0.0"},
			score:   -1,
		},
		{
			name: "diamond",
			world: []PackageInput{
				pkgInput("app", ver("1.0.0", dep("left", "*"), dep("right", "*"))),
				pkgInput("left", ver("1.0.0", dep("base", ">= 2.0.0"))),
				pkgInput("right", ver("1.0.0", dep("base", "< 3.0.0"))),
				pkgInput("base", ver("1.0.0"), ver("2.0.0"), ver("3.0.0")),
			},
			runList: []string{"app"},
			current: map[string]string{"base": "3.0.0"},
			want:    map[string]string{"app": "1.0.0", "left": "1.0.0", "right": "1.0.0", "base": "2.0.0"},
			score:   -1,
		},
		{
			name: "self dependency",
			world: []PackageInput{
				pkgInput("self", ver("1.0.0", dep("self", "1.0.0")), ver("2.0.0", dep("self", "1.0.0"))),
			},
			runList: []string{"self"},
			current: map[string]string{"self": "2.0.0"},
			want:    map[string]string{"self": "1.0.0"},
			score:   -1,
		},
		{
			name: "independent run list entries",
			world: []PackageInput{
				pkgInput("x", ver("1.0.0"), ver("2.0.0")),
				pkgInput("y", ver("1.0.0"), ver("2.0.0")),
			},
			runList: []string{"x", "y >= 2"},
			current: map[string]string{"x": "2.0.0", "y": "1.0.0"},
			want:    map[string]string{"x": "2.0.0", "y": "2.0.0"},
			score:   -1,
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			is := assert.New(t)
			cfg := actionConfigFixture(t, tcase.world...)

			res, err := NewResolve(cfg).Run(context.Background(), runList(t, tcase.runList...), baseline(t, tcase.current))
			if !is.NoError(err) {
				return
			}
			is.Equal(StatusOptimal, res.Status)
			is.Equal(tcase.want, versionStrings(res.Versions))
			is.Equal(tcase.score, res.Score)
			is.NotEmpty(res.Digest)

			if tcase.goldenYaml != "" {
				test.AssertGoldenString(t, res.FormatOutput(YAML), tcase.goldenYaml)
			}
			if tcase.goldenJSON != "" {
				test.AssertGoldenString(t, res.FormatOutput(JSON), tcase.goldenJSON)
			}
		})
	}
}

func TestResolveTable(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t, abcWorld()...)

	res, err := NewResolve(cfg).Run(context.Background(), runList(t, "A@1.0.0"), baseline(t, map[string]string{"A": "2.0.0"}))
	is.NoError(err)

	out := res.FormatOutput(Table)
	is.Contains(out, "Status: ")
	is.Contains(out, "optimal")
	is.Contains(out, "Changed packages: 1")
	is.Contains(out, fmt.Sprintf("Search: %d nodes, %d solutions", res.Stats.Nodes, res.Stats.Solutions))
	is.Contains(out, "NAME")
	for _, line := range []string{"A", "1.0.0", "2.0.0", "true"} {
		is.Contains(out, line)
	}
	is.Equal(1, res.Changes())
}

func TestResolveBoundedAndExhaustiveAgree(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t, abcWorld()...)
	rl := runList(t, "A")

	for _, current := range []map[string]string{
		{"A": "2.0.0", "B": "1.0.0"},
		{"A": "1.0.0", "B": "2.0.0"},
		{"A": "2.0.0", "B": "2.0.0"},
		{"C": "0.1.0"},
	} {
		bounded, err := NewResolve(cfg).Run(context.Background(), rl, baseline(t, current))
		is.NoError(err)

		r := NewResolve(cfg)
		r.NoBound = true
		exhaustive, err := r.Run(context.Background(), rl, baseline(t, current))
		is.NoError(err)

		is.Equal(exhaustive.Score, bounded.Score, "baseline %v", current)
		is.Equal(2, exhaustive.Stats.Solutions)
		is.LessOrEqual(bounded.Stats.Solutions, exhaustive.Stats.Solutions)
	}
}

func TestResolveOrderings(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t, abcWorld()...)
	rl := runList(t, "A")
	current := baseline(t, map[string]string{"A": "2.0.0", "B": "1.0.0"})

	for _, vo := range []VariableOrder{OrderInput, OrderSmallestDomain, OrderMostConstrained} {
		for _, val := range []ValueOrder{ValuesAscending, ValuesDescending} {
			r := NewResolve(cfg)
			r.VariableOrder = vo
			r.ValueOrder = val
			res, err := r.Run(context.Background(), rl, current)
			is.NoError(err)
			is.Equal(map[string]string{"A": "2.0.0", "B": "1.0.0", "C": "1.0.0"}, versionStrings(res.Versions))
		}
	}

	o, err := ParseVariableOrder("domdeg")
	is.NoError(err)
	is.Equal(OrderMostConstrained, o)
	_, err = ParseVariableOrder("random")
	is.Error(err)
}

func TestResolveEmptyRunList(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t, abcWorld()...)

	res, err := NewResolve(cfg).Run(context.Background(), nil, nil)
	is.NoError(err)
	is.Equal(StatusOptimal, res.Status)
	is.Empty(res.Versions)
	is.NotNil(res.Versions)
}

func TestResolveConfigurationErrors(t *testing.T) {
	for _, tcase := range []struct {
		name    string
		world   []PackageInput
		runList []string
		want    ConfigurationError
	}{
		{
			name: "dependency matching no version",
			world: []PackageInput{
				pkgInput("A", ver("1.0.0", dep("B", "= 3.0.0")), ver("2.0.0")),
				pkgInput("B", ver("1.0.0"), ver("2.0.0")),
			},
			runList: []string{"A"},
			want:    ConfigurationError{Package: "B", Dependent: "A@1.0.0", Constraint: "= 3.0.0", Reason: "no version satisfies the constraint"},
		},
		{
			name: "dependency on a package without versions",
			world: []PackageInput{
				pkgInput("A", ver("1.0.0", dep("ghost", "*"))),
			},
			runList: []string{"A"},
			want:    ConfigurationError{Package: "ghost", Dependent: "A@1.0.0", Constraint: "*", Reason: "no versions registered"},
		},
		{
			name:    "unknown run list package",
			world:   abcWorld(),
			runList: []string{"Z"},
			want:    ConfigurationError{Package: "Z", Reason: "unknown package"},
		},
		{
			name:    "run list pin matching nothing",
			world:   abcWorld(),
			runList: []string{"A@9.0.0"},
			want:    ConfigurationError{Package: "A", Constraint: "= 9.0.0", Reason: "no version satisfies the constraint"},
		},
		{
			name:    "conflicting run list pins",
			world:   abcWorld(),
			runList: []string{"A@1.0.0", "A@2.0.0"},
			want:    ConfigurationError{Package: "A", Constraint: "= 2.0.0", Reason: "run list constraints on the package exclude each other"},
		},
	} {
		t.Run(tcase.name, func(t *testing.T) {
			is := assert.New(t)
			cfg := actionConfigFixture(t, tcase.world...)

			_, err := NewResolve(cfg).Run(context.Background(), runList(t, tcase.runList...), nil)
			var cerr *ConfigurationError
			if is.True(errors.As(err, &cerr), "got %v", err) {
				is.Equal(tcase.want, *cerr)
			}
			is.False(errors.Is(err, ErrUnsatisfiable))
		})
	}
}

func TestResolveUnsatisfiable(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t,
		pkgInput("A", ver("1.0.0", dep("B", "1.0.0"))),
		pkgInput("C", ver("1.0.0", dep("B", "2.0.0"))),
		pkgInput("B", ver("1.0.0"), ver("2.0.0")),
	)

	_, err := NewResolve(cfg).Run(context.Background(), runList(t, "A", "C"), nil)
	is.True(errors.Is(err, ErrUnsatisfiable))
	var uerr *UnsatisfiableError
	is.True(errors.As(err, &uerr))
	is.Equal([]string{"A", "C"}, uerr.RunList.Names())
	is.Equal("dependencies cannot be satisfied: no set of versions satisfies run list [A, C]", err.Error())

	var cerr *ConfigurationError
	is.False(errors.As(err, &cerr))
}

// wideWorld has n independent packages of three versions each, all in the
// run list.
func wideWorld(n int) ([]PackageInput, []string) {
	var world []PackageInput
	var names []string
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("p%02d", i)
		world = append(world, pkgInput(name, ver("1.0.0"), ver("2.0.0"), ver("3.0.0")))
		names = append(names, name)
	}
	return world, names
}

func TestResolveLimits(t *testing.T) {
	is := assert.New(t)
	world, names := wideWorld(5)
	cfg := actionConfigFixture(t, world...)
	rl := runList(t, names...)

	// a root and five decisions reach the first solution
	r := NewResolve(cfg)
	r.NoBound = true
	r.NodeLimit = 7
	res, err := r.Run(context.Background(), rl, nil)
	is.NoError(err)
	is.Equal(StatusBestKnown, res.Status)
	is.Len(res.Versions, 5)
	is.Equal(7, res.Stats.Nodes)

	r.NodeLimit = 3
	_, err = r.Run(context.Background(), rl, nil)
	is.True(errors.Is(err, ErrSearchLimitReached))
	is.True(strings.HasPrefix(err.Error(), "search stopped before finding a solution"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewResolve(cfg).Run(ctx, rl, nil)
	is.True(errors.Is(err, context.Canceled))
}

func TestResolvePolicies(t *testing.T) {
	is := assert.New(t)
	cfg := actionConfigFixture(t, abcWorld()...)
	rl := runList(t, "A")
	current := baseline(t, map[string]string{"A": "2.0.0", "B": "1.0.0"})

	r := NewResolve(cfg)
	r.Policy = AdditionPenaltyPolicy{Weight: 0.5}
	res, err := r.Run(context.Background(), rl, current)
	is.NoError(err)
	is.Equal(map[string]string{"A": "2.0.0", "B": "1.0.0", "C": "1.0.0"}, versionStrings(res.Versions))
	is.Equal(-0.5, res.Score, "C is not in the baseline")

	plain, err := NewResolve(cfg).Run(context.Background(), rl, current)
	is.NoError(err)
	is.NotEqual(plain.Digest, res.Digest, "the policy is part of the request digest")
	is.Equal("addition-penalty(0.5)", AdditionPenaltyPolicy{Weight: 0.5}.Name())
}

func TestResolveWithoutGraphPanics(t *testing.T) {
	assert.Panics(t, func() {
		_, _ = NewResolve(&Configuration{}).Run(context.Background(), nil, nil)
	})
}
