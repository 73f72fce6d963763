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

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/log-go"
	"github.com/spf13/cobra"

	"github.com/rancher-sandbox/depselector/pkg/action"
)

const outputFlag = "output"

// bindOutputFlag will add the output flag to the given command and bind the
// value to the given format pointer
func bindOutputFlag(cmd *cobra.Command, varRef *action.OutputMode) {
	cmd.Flags().VarP(newOutputValue(action.Table, varRef), outputFlag, "o",
		fmt.Sprintf("prints the output in the specified format. Allowed values: %s", strings.Join(action.OutputModes(), ", ")))

	err := cmd.RegisterFlagCompletionFunc(outputFlag, func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var formatNames []string
		for _, format := range action.OutputModes() {
			if strings.HasPrefix(format, toComplete) {
				formatNames = append(formatNames, format)
			}
		}
		return formatNames, cobra.ShellCompDirectiveNoFileComp
	})

	if err != nil {
		log.Fatal(err)
	}
}

type outputValue action.OutputMode

func newOutputValue(defaultValue action.OutputMode, p *action.OutputMode) *outputValue {
	*p = defaultValue
	return (*outputValue)(p)
}

func (o *outputValue) String() string {
	return action.OutputMode(*o).String()
}

func (o *outputValue) Type() string {
	return "format"
}

func (o *outputValue) Set(s string) error {
	outfmt, err := action.ParseOutputMode(s)
	if err != nil {
		return err
	}
	*o = outputValue(outfmt)
	return nil
}

// bindSearchFlags adds the flags tuning the search to cmd.
func bindSearchFlags(cmd *cobra.Command, o *searchOptions) {
	f := cmd.Flags()
	f.DurationVar(&o.timeout, "timeout", 0, "stop searching after this long and report the best solution found (0 means no limit)")
	f.IntVar(&o.nodeLimit, "node-limit", 0, "stop searching after visiting this many nodes (0 means no limit)")
	f.StringVar(&o.order, "order", action.OrderInput.String(), "variable ordering: input, dom or domdeg")
	f.StringVar(&o.values, "values", action.ValuesAscending.String(), "value ordering: asc (oldest first) or desc")
	f.BoolVar(&o.noBound, "no-bound", false, "enumerate every solution instead of pruning with the best score")
	f.Float64Var(&o.additionWeight, "addition-penalty", 0, "also penalize every resolved package absent from the current versions by this weight")
	f.IntVar(&o.workers, "workers", 0, "number of concurrent resolutions (0 means one per CPU)")
}

type searchOptions struct {
	timeout        time.Duration
	nodeLimit      int
	order          string
	values         string
	noBound        bool
	additionWeight float64
	workers        int
}

// apply copies the options onto client.
func (o *searchOptions) apply(client *action.Resolve) error {
	vo, err := action.ParseVariableOrder(o.order)
	if err != nil {
		return err
	}
	val, err := action.ParseValueOrder(o.values)
	if err != nil {
		return err
	}
	client.VariableOrder = vo
	client.ValueOrder = val
	client.Timeout = o.timeout
	client.NodeLimit = o.nodeLimit
	client.NoBound = o.noBound
	if o.additionWeight > 0 {
		client.Policy = action.AdditionPenaltyPolicy{Weight: o.additionWeight}
	}
	return nil
}
