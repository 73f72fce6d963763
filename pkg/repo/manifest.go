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

package repo

import (
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/pkg/action"
)

// Manifest is a resolution request stored on disk: the run list and the
// versions currently deployed.
type Manifest struct {
	Run     []string          `json:"runlist"`
	Current map[string]string `json:"current,omitempty"`
}

// LoadManifest reads a manifest from path.
func LoadManifest(path string) (*Manifest, error) {
	m := &Manifest{}
	if err := readFile(path, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RunList parses the run list entries.
func (m *Manifest) RunList() (action.RunList, error) {
	return action.ParseRunList(m.Run)
}

// Baseline parses the current versions.
func (m *Manifest) Baseline() (action.Baseline, error) {
	return action.ParseBaseline(m.Current)
}

// LoadBaseline reads a file mapping package names to their current
// versions.
func LoadBaseline(path string) (action.Baseline, error) {
	current := map[string]string{}
	if err := readFile(path, &current); err != nil {
		return nil, err
	}
	b, err := action.ParseBaseline(current)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading %s", path)
	}
	return b, nil
}
