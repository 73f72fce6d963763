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

package main

import (
	"testing"
)

func TestResolveCmd(t *testing.T) {
	tests := []cmdTestCase{
		{
			name:      "resolve, no index",
			cmd:       "resolve A",
			contains:  []string{`required flag(s) "index" not set`},
			wantError: true,
		},
		{
			name:      "resolve, nothing to resolve",
			cmd:       "resolve --index testdata/index.yaml",
			contains:  []string{"nothing to resolve"},
			wantError: true,
		},
		{
			name:   "resolve, keeps current versions",
			cmd:    "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A -o yaml",
			golden: "output/resolve-a2.yaml",
			repeat: 2,
		},
		{
			name:   "resolve, toml index",
			cmd:    "resolve --index testdata/index.toml --current testdata/current-a1.yaml A -o yaml",
			golden: "output/resolve-a1.yaml",
		},
		{
			name:   "resolve, json output",
			cmd:    "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A --output json",
			golden: "output/resolve-a2.json",
		},
		{
			name:   "resolve, pinned version forces changes",
			cmd:    "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A B@2.0.0 -o yaml",
			golden: "output/resolve-pinned.yaml",
		},
		{
			name:   "resolve, constraint argument",
			cmd:    "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A 'B >= 2.0.0' -o yaml --order domdeg --values desc",
			golden: "output/resolve-pinned.yaml",
		},
		{
			name:   "resolve, exhaustive search agrees",
			cmd:    "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A B@2.0.0 -o yaml --no-bound",
			golden: "output/resolve-pinned.yaml",
		},
		{
			name:     "resolve, table output",
			cmd:      "resolve --index testdata/index.yaml --current testdata/current-a2.yaml A",
			contains: []string{"Status: optimal", "Changed packages: 0", "NAME", "CURRENT"},
		},
		{
			name:      "resolve, unknown package",
			cmd:       "resolve --index testdata/index.yaml Z",
			contains:  []string{`package "Z": unknown package`},
			wantError: true,
		},
		{
			name:      "resolve, no version matches",
			cmd:       "resolve --index testdata/index.yaml A@3.0.0",
			contains:  []string{"no version satisfies the constraint"},
			wantError: true,
		},
		{
			name:      "resolve, unsatisfiable",
			cmd:       "resolve --index testdata/index-broken.yaml D",
			contains:  []string{"dependencies cannot be satisfied"},
			wantError: true,
		},
		{
			name:      "resolve, bad output format",
			cmd:       "resolve --index testdata/index.yaml A -o xml",
			contains:  []string{`invalid format type "xml"`},
			wantError: true,
		},
		{
			name:      "resolve, bad order",
			cmd:       "resolve --index testdata/index.yaml A --order random",
			contains:  []string{`unknown variable order "random"`},
			wantError: true,
		},
		{
			name:      "resolve, missing index",
			cmd:       "resolve --index testdata/nope.yaml A",
			contains:  []string{"no such file or directory"},
			wantError: true,
		},
		{
			name:   "resolve, manifests",
			cmd:    "resolve --index testdata/index.yaml -f testdata/manifest-a2.yaml -f testdata/manifest-a1.toml -o yaml --noemojis --workers 2",
			golden: "output/resolve-manifests.txt",
		},
		{
			name:      "resolve, manifests and arguments",
			cmd:       "resolve --index testdata/index.yaml -f testdata/manifest-a2.yaml A",
			contains:  []string{"both as arguments and with --file"},
			wantError: true,
		},
		{
			name: "resolve, one manifest fails",
			cmd:  "resolve --index testdata/index.yaml -f testdata/manifest-a2.yaml -f testdata/manifest-unknown.yaml --noemojis",
			contains: []string{
				"1 of 2 manifests could not be resolved",
				`testdata/manifest-unknown.yaml: package "Z": unknown package`,
			},
			wantError: true,
		},
	}
	runTestCmd(t, tests)
}
