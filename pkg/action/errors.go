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
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/pkg"
)

// ConfigurationError reports a broken dependency set, found before search.
type ConfigurationError = pkg.ConfigurationError

// ErrUnsatisfiable is matched by every error reporting that no set of
// versions satisfies a run list.
var ErrUnsatisfiable = errors.New("dependencies cannot be satisfied")

// UnsatisfiableError is returned when the search exhausted every candidate
// without finding a solution. It matches ErrUnsatisfiable.
type UnsatisfiableError struct {
	RunList RunList
}

func (e *UnsatisfiableError) Error() string {
	items := make([]string, len(e.RunList))
	for i, item := range e.RunList {
		items[i] = item.String()
	}
	return fmt.Sprintf("%s: no set of versions satisfies run list [%s]", ErrUnsatisfiable, strings.Join(items, ", "))
}

// Unwrap returns ErrUnsatisfiable.
func (e *UnsatisfiableError) Unwrap() error {
	return ErrUnsatisfiable
}
