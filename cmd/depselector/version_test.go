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

func TestVersion(t *testing.T) {
	tests := []cmdTestCase{
		{
			name:     "default",
			cmd:      "version",
			contains: []string{`version.BuildInfo{Version:"v0.1"`},
		},
		{
			name:     "short",
			cmd:      "version --short",
			contains: []string{"v0.1"},
		},
		{
			name:   "template",
			cmd:    "version --template='Version: {{.Version}}'",
			golden: "output/version-template.txt",
		},
		{
			name:      "bad template",
			cmd:       "version --template='{{.Nope'",
			wantError: true,
		},
	}
	runTestCmd(t, tests)
}
