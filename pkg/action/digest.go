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
	"sort"

	"github.com/mitchellh/hashstructure/v2"
)

// digestInput is the normalized form of a resolution request. Two requests
// with the same digest always resolve to the same result on one graph.
type digestInput struct {
	RunList  []string
	Baseline []string
	Policy   string
	Order    string
}

// requestDigest hashes the inputs of a resolution.
func requestDigest(rl RunList, baseline Baseline, r *Resolve) (string, error) {
	in := digestInput{
		RunList: make([]string, len(rl)),
		Policy:  r.policyName(),
		Order:   fmt.Sprintf("%s/%s", r.VariableOrder, r.ValueOrder),
	}
	for i, item := range rl {
		in.RunList[i] = item.String()
	}
	for name, v := range baseline {
		if v != nil {
			in.Baseline = append(in.Baseline, name+"@"+v.String())
		}
	}
	sort.Strings(in.Baseline)

	h, err := hashstructure.Hash(in, hashstructure.FormatV2, nil)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", h), nil
}
