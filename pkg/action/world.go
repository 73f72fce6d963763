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
	"github.com/Masterminds/log-go"
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/internal/pkg"
)

// PackageInput describes a package and the versions it offers.
type PackageInput struct {
	Name     string
	Versions []VersionInput
}

// VersionInput describes one version and its dependencies.
type VersionInput struct {
	Version      *semver.Version
	Dependencies []DependencyInput
}

// DependencyInput is a dependency on package Name. A nil Constraint
// accepts any version.
type DependencyInput struct {
	Name       string
	Constraint Constraint
}

// BuildWorld creates the package graph from inputs and freezes it.
//
// Packages may appear several times; their versions are merged. A version
// declared twice keeps the dependencies of both declarations. Dependencies
// may name packages that are never declared: such packages exist in the
// graph without versions, and resolving anything that reaches them fails
// with a ConfigurationError.
func BuildWorld(inputs []PackageInput, logger log.Logger) (*pkg.Graph, error) {
	if logger == nil {
		logger = log.Current
	}

	g := pkg.NewGraph()
	for _, in := range inputs {
		if in.Name == "" {
			return nil, errors.New("package without a name")
		}
		p := g.Package(in.Name)
		for _, vin := range in.Versions {
			if vin.Version == nil {
				return nil, errors.Errorf("package %q has a version without value", in.Name)
			}
			if _, ok := p.Version(vin.Version); ok {
				logger.Debugf("Merging duplicate version %s", pkg.CreateFingerprint(in.Name, vin.Version))
			}
			pv := p.AddVersion(vin.Version)
			for _, din := range vin.Dependencies {
				if din.Name == "" {
					return nil, errors.Errorf("%s has a dependency without a package name", pv)
				}
				pv.AddDependency(g.Package(din.Name), din.Constraint)
			}
		}
	}
	g.Freeze()

	g.DebugPrint(logger)
	return g, nil
}
