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

package versionset

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
)

func versions(strs ...string) []*semver.Version {
	vs := make([]*semver.Version, len(strs))
	for i, s := range strs {
		vs[i] = semver.MustParse(s)
	}
	return vs
}

func TestDenseMapping(t *testing.T) {
	is := assert.New(t)

	s := New(versions("2.0.0", "1.0.0", "1.5.0", "1.0.0")...)
	is.Equal(3, s.Len())
	is.Equal("[0:1.0.0 1:1.5.0 2:2.0.0]", s.String())
	is.Equal([]*semver.Version{
		semver.MustParse("2.0.0"), semver.MustParse("1.0.0"), semver.MustParse("1.5.0"),
	}, s.Insertion())

	is.Equal(0, s.IndexOf(semver.MustParse("1.0.0")))
	is.Equal(2, s.IndexOf(semver.MustParse("2.0.0")))
	is.Equal("1.5.0", s.VersionAt(1).String())

	_, ok := s.Lookup(semver.MustParse("3.0.0"))
	is.False(ok)
}

func TestAddRenumbers(t *testing.T) {
	is := assert.New(t)

	s := New(versions("1.0.0", "3.0.0")...)
	is.Equal(1, s.IndexOf(semver.MustParse("3.0.0")))

	is.True(s.Add(semver.MustParse("2.0.0")))
	is.False(s.Add(semver.MustParse("2.0.0")))
	is.Equal(1, s.IndexOf(semver.MustParse("2.0.0")))
	is.Equal(2, s.IndexOf(semver.MustParse("3.0.0")))
}

func TestRoundTrip(t *testing.T) {
	is := assert.New(t)

	s := New(versions("0.1.0", "10.0.0", "1.2.3-beta.1", "1.2.3", "1.2.3+build.7", "0.0.1")...)
	for i := 0; i < s.Len(); i++ {
		is.Equal(i, s.IndexOf(s.VersionAt(i)), "index %d", i)
	}
	// prerelease sorts before its release, build metadata after by string
	is.Equal("1.2.3-beta.1", s.VersionAt(2).String())
	is.Equal("1.2.3", s.VersionAt(3).String())
	is.Equal("1.2.3+build.7", s.VersionAt(4).String())
}

func TestMatching(t *testing.T) {
	is := assert.New(t)

	s := New(versions("1.0.0", "1.1.0", "2.0.0")...)
	c, err := semver.NewConstraint("^1.0.0")
	is.NoError(err)
	is.Equal([]int{0, 1}, s.Matching(c.Check))
	is.Equal([]int{}, s.Matching(func(*semver.Version) bool { return false }))
}

func TestProgrammingErrorsPanic(t *testing.T) {
	is := assert.New(t)

	s := New(versions("1.0.0")...)
	is.Panics(func() { s.IndexOf(semver.MustParse("9.9.9")) })
	is.Panics(func() { s.VersionAt(1) })
	is.Panics(func() { s.VersionAt(-1) })
	is.Panics(func() { s.Add(nil) })
}

func TestZeroValue(t *testing.T) {
	is := assert.New(t)

	var s VersionSet
	is.Equal(0, s.Len())
	is.True(s.Add(semver.MustParse("1.0.0")))
	is.Equal(0, s.IndexOf(semver.MustParse("1.0.0")))
}
