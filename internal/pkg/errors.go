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
	"strings"
)

// ConfigurationError reports a dependency set that is broken before any
// search starts: a package nobody can provide, or a constraint that matches
// none of its target's versions.
type ConfigurationError struct {
	// Package is the package that cannot be satisfied.
	Package string
	// Dependent is the fingerprint of the package version that requires
	// Package. It is empty when the requirement comes from the run list.
	Dependent string
	// Constraint is the offending constraint, if any.
	Constraint string
	Reason     string
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %q", e.Package)
	if e.Dependent != "" {
		fmt.Fprintf(&b, " required by %s", e.Dependent)
	}
	if e.Constraint != "" {
		fmt.Fprintf(&b, " with constraint %q", e.Constraint)
	}
	b.WriteString(": ")
	b.WriteString(e.Reason)
	return b.String()
}

// Reasons reported by ConfigurationError.
const (
	ReasonUnknownPackage  = "unknown package"
	ReasonNoVersions      = "no versions registered"
	ReasonNoMatch         = "no version satisfies the constraint"
	ReasonConflictingPins = "run list constraints on the package exclude each other"
)
