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
	"sort"

	"github.com/Masterminds/log-go"
	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/rancher-sandbox/depselector/pkg/action"
)

// APIVersionV1 is the v1 API version for index files.
const APIVersionV1 = "v1"

var (
	// ErrNoAPIVersion indicates that an API version was not specified.
	ErrNoAPIVersion = errors.New("no API version specified")

	// ErrNoPackageVersion indicates that a package with the given version is not found.
	ErrNoPackageVersion = errors.New("no package version found")
	// ErrNoPackageName indicates that a package with the given name is not found.
	ErrNoPackageName = errors.New("no package name found")
)

// PackageVersion is one version of a package in an index. Dependencies map
// package names to constraint expressions.
type PackageVersion struct {
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Validate checks the version and every dependency constraint.
func (pv *PackageVersion) Validate() error {
	if _, err := semver.NewVersion(pv.Version); err != nil {
		return errors.Wrapf(err, "invalid version %q", pv.Version)
	}
	for name, expr := range pv.Dependencies {
		if name == "" {
			return errors.New("dependency without a package name")
		}
		if _, err := action.ParseConstraint(expr); err != nil {
			return errors.Wrapf(err, "dependency on %q", name)
		}
	}
	return nil
}

// PackageVersions is a list of versions of one package.
// Implements a sorter on Version, oldest first.
type PackageVersions []*PackageVersion

func (p PackageVersions) Len() int      { return len(p) }
func (p PackageVersions) Swap(i, j int) { p[i], p[j] = p[j], p[i] }
func (p PackageVersions) Less(i, j int) bool {
	a, err := semver.NewVersion(p[i].Version)
	if err != nil {
		return true
	}
	b, err := semver.NewVersion(p[j].Version)
	if err != nil {
		return false
	}
	return a.LessThan(b)
}

// IndexFile lists every known package and its versions.
type IndexFile struct {
	APIVersion string                     `json:"apiVersion"`
	Entries    map[string]PackageVersions `json:"entries"`
}

// NewIndexFile initializes an index.
func NewIndexFile() *IndexFile {
	return &IndexFile{
		APIVersion: APIVersionV1,
		Entries:    map[string]PackageVersions{},
	}
}

// LoadIndexFile takes a file at the given path and returns an IndexFile object
func LoadIndexFile(path string) (*IndexFile, error) {
	i := &IndexFile{}
	if err := readFile(path, i); err != nil {
		return nil, err
	}
	if err := i.validate(path); err != nil {
		return nil, errors.Wrapf(err, "error loading %s", path)
	}
	return i, nil
}

// validate drops invalid entries and sorts the rest. The source parameter
// is only used for logging. Fails if the API version is not set.
func (i *IndexFile) validate(source string) error {
	if i.Entries == nil {
		i.Entries = map[string]PackageVersions{}
	}
	for name, pvs := range i.Entries {
		for idx := len(pvs) - 1; idx >= 0; idx-- {
			if err := pvs[idx].Validate(); err != nil {
				log.Warnf("skipping loading invalid entry for package %q %q from %s: %s", name, pvs[idx].Version, source, err)
				pvs = append(pvs[:idx], pvs[idx+1:]...)
			}
		}
		i.Entries[name] = pvs
	}
	i.SortEntries()
	if i.APIVersion == "" {
		return ErrNoAPIVersion
	}
	return nil
}

// MustAdd adds a package version to the index, validating it first.
func (i *IndexFile) MustAdd(name, version string, deps map[string]string) error {
	if name == "" {
		return ErrNoPackageName
	}
	pv := &PackageVersion{Version: version, Dependencies: deps}
	if err := pv.Validate(); err != nil {
		return errors.Wrapf(err, "validate failed for %s", name)
	}
	if i.Entries == nil {
		i.Entries = map[string]PackageVersions{}
	}
	i.Entries[name] = append(i.Entries[name], pv)
	return nil
}

// Has returns true if the index has an entry for a package with the given
// name and exact version.
func (i *IndexFile) Has(name, version string) bool {
	_, err := i.Get(name, version)
	return err == nil
}

// Get returns the PackageVersion for the given name and version. Versions
// are compared semantically, so "1.0" finds "1.0.0".
func (i *IndexFile) Get(name, version string) (*PackageVersion, error) {
	pvs, ok := i.Entries[name]
	if !ok {
		return nil, ErrNoPackageName
	}
	want, err := semver.NewVersion(version)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid version %q", version)
	}
	for _, pv := range pvs {
		if v, err := semver.NewVersion(pv.Version); err == nil && v.Equal(want) {
			return pv, nil
		}
	}
	return nil, errors.Wrapf(ErrNoPackageVersion, "%s %s", name, version)
}

// SortEntries sorts the versions of every package, oldest first.
func (i *IndexFile) SortEntries() {
	for _, versions := range i.Entries {
		sort.Stable(versions)
	}
}

// Merge merges the given index file into this index.
//
// If one of the entries in the given index does _not_ already exist, it is
// added. In all other cases, the existing record is preserved.
func (i *IndexFile) Merge(f *IndexFile) {
	for name, pvs := range f.Entries {
		for _, pv := range pvs {
			if !i.Has(name, pv.Version) {
				if i.Entries == nil {
					i.Entries = map[string]PackageVersions{}
				}
				i.Entries[name] = append(i.Entries[name], pv)
			}
		}
	}
	i.SortEntries()
}

// Inputs converts the index into the graph description BuildWorld takes.
// Packages are sorted by name and dependencies by target name, so equal
// indexes always build equal graphs.
func (i *IndexFile) Inputs() ([]action.PackageInput, error) {
	inputs := make([]action.PackageInput, 0, len(i.Entries))
	for _, name := range sortedKeys(i.Entries) {
		in := action.PackageInput{Name: name}
		for _, pv := range i.Entries[name] {
			v, err := semver.NewVersion(pv.Version)
			if err != nil {
				return nil, errors.Wrapf(err, "package %q has an invalid version %q", name, pv.Version)
			}
			vin := action.VersionInput{Version: v}

			deps := make([]string, 0, len(pv.Dependencies))
			for dep := range pv.Dependencies {
				deps = append(deps, dep)
			}
			sort.Strings(deps)
			for _, dep := range deps {
				c, err := action.ParseConstraint(pv.Dependencies[dep])
				if err != nil {
					return nil, errors.Wrapf(err, "%s@%s depends on %q", name, pv.Version, dep)
				}
				vin.Dependencies = append(vin.Dependencies, action.DependencyInput{Name: dep, Constraint: c})
			}
			in.Versions = append(in.Versions, vin)
		}
		inputs = append(inputs, in)
	}
	return inputs, nil
}

// Names returns the package names of the index, sorted.
func (i *IndexFile) Names() []string {
	return sortedKeys(i.Entries)
}

func sortedKeys(m map[string]PackageVersions) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
