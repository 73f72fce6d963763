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

	"github.com/rancher-sandbox/depselector/internal/objective"
)

// Policy decides how resolutions are scored against the baseline.
type Policy interface {
	// Name identifies the policy in request digests.
	Name() string
	// Scorer returns the scorer of one resolution. baseline maps each
	// encoded package found in the baseline to its baseline version index,
	// -1 when that version is not offered.
	Scorer(baseline map[string]int) objective.Scorer
}

// EditDistancePolicy minimizes the number of baseline packages that change
// version. New packages are free.
type EditDistancePolicy struct{}

// Name implements Policy.
func (EditDistancePolicy) Name() string { return "edit-distance" }

// Scorer implements Policy.
func (EditDistancePolicy) Scorer(baseline map[string]int) objective.Scorer {
	return objective.NewEditDistance(baseline)
}

// AdditionPenaltyPolicy is EditDistancePolicy with an extra cost of Weight
// for every resolved package that is not in the baseline.
type AdditionPenaltyPolicy struct {
	Weight float64
}

// Name implements Policy.
func (p AdditionPenaltyPolicy) Name() string {
	return fmt.Sprintf("addition-penalty(%g)", p.Weight)
}

// Scorer implements Policy.
func (p AdditionPenaltyPolicy) Scorer(baseline map[string]int) objective.Scorer {
	return objective.NewAdditionPenalty(objective.NewEditDistance(baseline), baseline, p.Weight)
}
