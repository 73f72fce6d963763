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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	is := assert.New(t)

	defer func(v, m, c string) { version, metadata, gitCommit = v, m, c }(version, metadata, gitCommit)

	version, metadata, gitCommit = "v1.2.3", "", ""
	is.Equal("v1.2.3", GetVersion())
	is.Equal("v1.2.3", Short())
	is.Empty(Get().GoVersion)

	metadata, gitCommit = "unreleased", "fe51cd1e31e6a202cba7dead9552a6d418ded79a"
	is.Equal("v1.2.3+unreleased", GetVersion())
	is.Equal("v1.2.3+unreleased+gfe51cd1", Short())
	is.Equal("fe51cd1e31e6a202cba7dead9552a6d418ded79a", Get().GitCommit)
}
