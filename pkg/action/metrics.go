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
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	resolutionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "depselector",
		Name:      "resolutions_total",
		Help:      "Resolutions run, by outcome.",
	}, []string{"status"})

	searchNodes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depselector",
		Name:      "search_nodes",
		Help:      "Search nodes expanded per resolution.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})

	resolveDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "depselector",
		Name:      "resolve_duration_seconds",
		Help:      "Time spent resolving a run list.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Outcome labels of depselector_resolutions_total besides the result
// statuses.
const (
	outcomeConfiguration = "configuration_error"
	outcomeUnsatisfiable = "unsatisfiable"
	outcomeAborted       = "aborted"
)

// RegisterMetrics registers the resolver metrics on reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{resolutionsTotal, searchNodes, resolveDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}

func observeResolution(outcome string, stats SearchStats, elapsed time.Duration) {
	resolutionsTotal.WithLabelValues(outcome).Inc()
	searchNodes.Observe(float64(stats.Nodes))
	resolveDuration.Observe(elapsed.Seconds())
}
