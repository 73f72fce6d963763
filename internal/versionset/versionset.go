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

// Package versionset maps the versions offered by a package to a densely
// packed integer range, the only representation the solver ever sees.
package versionset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// VersionSet holds the distinct versions of a package. Versions are kept in
// insertion order, and also sorted ascending; the position in the sorted
// slice is the densely packed index of a version.
//
// A VersionSet is not safe for concurrent mutation. Once all versions are
// registered it may be read from any number of goroutines.
type VersionSet struct {
	inserted []*semver.Version
	sorted   []*semver.Version
	index    map[string]int
}

// New creates a VersionSet holding the given versions. Duplicates are
// dropped.
func New(versions ...*semver.Version) *VersionSet {
	s := &VersionSet{index: make(map[string]int, len(versions))}
	for _, v := range versions {
		s.Add(v)
	}
	return s
}

// Add registers v and recomputes the dense mapping. It returns false if an
// equal version was already registered.
func (s *VersionSet) Add(v *semver.Version) bool {
	if v == nil {
		panic("versionset: cannot add a nil version")
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[v.String()]; ok {
		return false
	}

	s.inserted = append(s.inserted, v)

	// insert keeping ascending order, then renumber everything at or after
	// the insertion point
	at := sort.Search(len(s.sorted), func(i int) bool {
		return less(v, s.sorted[i])
	})
	s.sorted = append(s.sorted, nil)
	copy(s.sorted[at+1:], s.sorted[at:])
	s.sorted[at] = v
	for i := at; i < len(s.sorted); i++ {
		s.index[s.sorted[i].String()] = i
	}
	return true
}

// less orders by semver precedence, falling back to the canonical string so
// that versions differing only in build metadata still get a total order.
func less(a, b *semver.Version) bool {
	if c := a.Compare(b); c != 0 {
		return c < 0
	}
	return a.String() < b.String()
}

// Len returns the number of distinct versions.
func (s *VersionSet) Len() int {
	return len(s.sorted)
}

// Lookup returns the dense index of v.
func (s *VersionSet) Lookup(v *semver.Version) (int, bool) {
	if v == nil {
		return -1, false
	}
	i, ok := s.index[v.String()]
	return i, ok
}

// IndexOf returns the dense index of v. Asking for a version that was never
// registered is a programming error and panics.
func (s *VersionSet) IndexOf(v *semver.Version) int {
	i, ok := s.Lookup(v)
	if !ok {
		panic(fmt.Sprintf("versionset: version %v is not registered", v))
	}
	return i
}

// VersionAt returns the version with dense index i. It panics when i is out
// of range.
func (s *VersionSet) VersionAt(i int) *semver.Version {
	if i < 0 || i >= len(s.sorted) {
		panic(fmt.Sprintf("versionset: index %d out of range [0,%d)", i, len(s.sorted)))
	}
	return s.sorted[i]
}

// Versions returns the versions in ascending order.
func (s *VersionSet) Versions() []*semver.Version {
	out := make([]*semver.Version, len(s.sorted))
	copy(out, s.sorted)
	return out
}

// Insertion returns the versions in the order they were added.
func (s *VersionSet) Insertion() []*semver.Version {
	out := make([]*semver.Version, len(s.inserted))
	copy(out, s.inserted)
	return out
}

// Matching returns, ascending, the dense indices of the versions for which
// pred holds.
func (s *VersionSet) Matching(pred func(*semver.Version) bool) []int {
	matches := []int{}
	for i, v := range s.sorted {
		if pred(v) {
			matches = append(matches, i)
		}
	}
	return matches
}

func (s *VersionSet) String() string {
	strs := make([]string, len(s.sorted))
	for i, v := range s.sorted {
		strs[i] = fmt.Sprintf("%d:%s", i, v)
	}
	return "[" + strings.Join(strs, " ") + "]"
}
