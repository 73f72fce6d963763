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
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	is := assert.New(t)

	reg := prometheus.NewRegistry()
	is.NoError(RegisterMetrics(reg))
	is.NoError(RegisterMetrics(reg), "registering twice is harmless")

	cfg := actionConfigFixture(t, abcWorld()...)
	optimal := testutil.ToFloat64(resolutionsTotal.WithLabelValues(string(StatusOptimal)))
	broken := testutil.ToFloat64(resolutionsTotal.WithLabelValues(outcomeConfiguration))

	_, err := NewResolve(cfg).Run(context.Background(), runList(t, "A"), nil)
	is.NoError(err)
	_, err = NewResolve(cfg).Run(context.Background(), runList(t, "nope"), nil)
	is.Error(err)

	is.Equal(optimal+1, testutil.ToFloat64(resolutionsTotal.WithLabelValues(string(StatusOptimal))))
	is.Equal(broken+1, testutil.ToFloat64(resolutionsTotal.WithLabelValues(outcomeConfiguration)))

	n, err := testutil.GatherAndCount(reg, "depselector_search_nodes", "depselector_resolve_duration_seconds")
	is.NoError(err)
	is.Equal(2, n)
}
